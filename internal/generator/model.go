package generator

// Discovery kinds
const (
	DiscoveryStaticIPs     = "StaticIPs"
	DiscoveryMulticast     = "Multicast"
	DiscoveryS3            = "S3"
	DiscoveryCloud         = "Cloud"
	DiscoveryGoogleStorage = "GoogleStorage"
	DiscoveryJDBC          = "JDBC"
	DiscoverySharedFS      = "SharedFS"
)

// Eviction policy kinds
const (
	EvictionLRU    = "LRU"
	EvictionRandom = "Random"
	EvictionFIFO   = "FIFO"
	EvictionSorted = "Sorted"
)

// Marshaller kinds
const (
	MarshallerOptimized = "OptimizedMarshaller"
	MarshallerJdk       = "JdkMarshaller"
)

// Swap space SPI kinds
const (
	SwapFileSpace = "FileSwapSpaceSpi"
)

// Store factory kinds
const (
	StoreJdbcPojo      = "CacheJdbcPojoStoreFactory"
	StoreJdbcBlob      = "CacheJdbcBlobStoreFactory"
	StoreHibernateBlob = "CacheHibernateBlobStoreFactory"
)

// ClusterConfig is the root configuration document. The kind-specific
// descriptors hold one variant per closed kind; only the variant matching
// the active Kind is consulted during generation, sibling variants are
// inert and never emitted.
type ClusterConfig struct {
	Name      string        `json:"name"`
	Discovery Discovery     `json:"discovery"`
	Caches    []CacheConfig `json:"caches"`

	AtomicConfiguration *AtomicConfiguration `json:"atomicConfiguration,omitempty"`

	NetworkTimeout        *int `json:"networkTimeout,omitempty"`
	NetworkSendRetryDelay *int `json:"networkSendRetryDelay,omitempty"`
	NetworkSendRetryCount *int `json:"networkSendRetryCount,omitempty"`
	SegmentCheckFrequency *int `json:"segmentCheckFrequency,omitempty"`
	WaitForSegmentOnStart bool `json:"waitForSegmentOnStart,omitempty"`
	DiscoveryStartupDelay *int `json:"discoveryStartupDelay,omitempty"`

	DeploymentMode string `json:"deploymentMode,omitempty"`

	IncludeEventTypes []string `json:"includeEventTypes,omitempty"`

	Marshaller                    *Marshaller `json:"marshaller,omitempty"`
	MarshalLocalJobs              bool        `json:"marshalLocalJobs,omitempty"`
	MarshallerCacheKeepAliveTime  *int        `json:"marshallerCacheKeepAliveTime,omitempty"`
	MarshallerCacheThreadPoolSize *int        `json:"marshallerCacheThreadPoolSize,omitempty"`

	MetricsExpireTime      *int `json:"metricsExpireTime,omitempty"`
	MetricsHistorySize     *int `json:"metricsHistorySize,omitempty"`
	MetricsLogFrequency    *int `json:"metricsLogFrequency,omitempty"`
	MetricsUpdateFrequency *int `json:"metricsUpdateFrequency,omitempty"`

	PeerClassLoadingEnabled                  bool     `json:"peerClassLoadingEnabled,omitempty"`
	PeerClassLoadingLocalClassPathExclude    []string `json:"peerClassLoadingLocalClassPathExclude,omitempty"`
	PeerClassLoadingMissedResourcesCacheSize *int     `json:"peerClassLoadingMissedResourcesCacheSize,omitempty"`
	PeerClassLoadingThreadPoolSize           *int     `json:"peerClassLoadingThreadPoolSize,omitempty"`

	SwapSpaceSpi *SwapSpaceSpi `json:"swapSpaceSpi,omitempty"`

	ClockSyncSamples   *int `json:"clockSyncSamples,omitempty"`
	ClockSyncFrequency *int `json:"clockSyncFrequency,omitempty"`

	PublicThreadPoolSize     *int `json:"publicThreadPoolSize,omitempty"`
	SystemThreadPoolSize     *int `json:"systemThreadPoolSize,omitempty"`
	ManagementThreadPoolSize *int `json:"managementThreadPoolSize,omitempty"`
	IgfsThreadPoolSize       *int `json:"igfsThreadPoolSize,omitempty"`

	TransactionConfiguration *TransactionConfiguration `json:"transactionConfiguration,omitempty"`

	CacheSanityCheckEnabled bool `json:"cacheSanityCheckEnabled,omitempty"`
}

// Discovery selects the cluster-membership strategy and its IP finder.
type Discovery struct {
	Kind          string                  `json:"kind"`
	StaticIPs     *StaticIPsDiscovery     `json:"staticIps,omitempty"`
	Multicast     *MulticastDiscovery     `json:"multicast,omitempty"`
	S3            *S3Discovery            `json:"s3,omitempty"`
	Cloud         *CloudDiscovery         `json:"cloud,omitempty"`
	GoogleStorage *GoogleStorageDiscovery `json:"googleStorage,omitempty"`
	JDBC          *JdbcDiscovery          `json:"jdbc,omitempty"`
	SharedFS      *SharedFSDiscovery      `json:"sharedFs,omitempty"`
}

// variant returns the parameter bag of the active discovery kind.
func (d *Discovery) variant() (interface{}, bool) {
	switch d.Kind {
	case DiscoveryStaticIPs:
		return d.StaticIPs, true
	case DiscoveryMulticast:
		return d.Multicast, true
	case DiscoveryS3:
		return d.S3, true
	case DiscoveryCloud:
		return d.Cloud, true
	case DiscoveryGoogleStorage:
		return d.GoogleStorage, true
	case DiscoveryJDBC:
		return d.JDBC, true
	case DiscoverySharedFS:
		return d.SharedFS, true
	default:
		return nil, false
	}
}

type StaticIPsDiscovery struct {
	Addresses []string `json:"addresses,omitempty"`
}

type MulticastDiscovery struct {
	MulticastGroup         string `json:"multicastGroup,omitempty"`
	MulticastPort          *int   `json:"multicastPort,omitempty"`
	ResponseWaitTime       *int   `json:"responseWaitTime,omitempty"`
	AddressRequestAttempts *int   `json:"addressRequestAttempts,omitempty"`
	LocalAddress           string `json:"localAddress,omitempty"`
}

type S3Discovery struct {
	BucketName string `json:"bucketName,omitempty"`
}

type CloudDiscovery struct {
	Credential     string   `json:"credential,omitempty"`
	CredentialPath string   `json:"credentialPath,omitempty"`
	Identity       string   `json:"identity,omitempty"`
	Provider       string   `json:"provider,omitempty"`
	Regions        []string `json:"regions,omitempty"`
	Zones          []string `json:"zones,omitempty"`
}

type GoogleStorageDiscovery struct {
	ProjectName               string `json:"projectName,omitempty"`
	BucketName                string `json:"bucketName,omitempty"`
	ServiceAccountP12FilePath string `json:"serviceAccountP12FilePath,omitempty"`
	ServiceAccountId          string `json:"serviceAccountId,omitempty"`
}

type JdbcDiscovery struct {
	InitSchema bool `json:"initSchema,omitempty"`
}

type SharedFSDiscovery struct {
	Path string `json:"path,omitempty"`
}

// AtomicConfiguration tunes atomic data structures.
type AtomicConfiguration struct {
	Backups                   *int   `json:"backups,omitempty"`
	CacheMode                 string `json:"cacheMode,omitempty"`
	AtomicSequenceReserveSize *int   `json:"atomicSequenceReserveSize,omitempty"`
}

// Marshaller selects the cluster serialization strategy.
type Marshaller struct {
	Kind      string               `json:"kind"`
	Optimized *OptimizedMarshaller `json:"optimized,omitempty"`
	Jdk       *JdkMarshaller       `json:"jdk,omitempty"`
}

func (m *Marshaller) variant() (interface{}, bool) {
	switch m.Kind {
	case MarshallerOptimized:
		return m.Optimized, true
	case MarshallerJdk:
		return m.Jdk, true
	default:
		return nil, false
	}
}

type OptimizedMarshaller struct {
	PoolSize            *int `json:"poolSize,omitempty"`
	RequireSerializable bool `json:"requireSerializable,omitempty"`
}

type JdkMarshaller struct{}

// SwapSpaceSpi selects the swap storage strategy.
type SwapSpaceSpi struct {
	Kind          string            `json:"kind"`
	FileSwapSpace *FileSwapSpaceSpi `json:"fileSwapSpace,omitempty"`
}

func (s *SwapSpaceSpi) variant() (interface{}, bool) {
	switch s.Kind {
	case SwapFileSpace:
		return s.FileSwapSpace, true
	default:
		return nil, false
	}
}

type FileSwapSpaceSpi struct {
	BaseDirectory     string   `json:"baseDirectory,omitempty"`
	ReadStripesNumber *int     `json:"readStripesNumber,omitempty"`
	MaximumSparsity   *float64 `json:"maximumSparsity,omitempty"`
	MaxWriteQueueSize *int     `json:"maxWriteQueueSize,omitempty"`
	WriteBufferSize   *int     `json:"writeBufferSize,omitempty"`
}

// TransactionConfiguration tunes cluster-wide transaction defaults.
type TransactionConfiguration struct {
	DefaultTxConcurrency     string `json:"defaultTxConcurrency,omitempty"`
	DefaultTxIsolation       string `json:"defaultTxIsolation,omitempty"`
	DefaultTxTimeout         *int   `json:"defaultTxTimeout,omitempty"`
	PessimisticTxLogLinger   *int   `json:"pessimisticTxLogLinger,omitempty"`
	PessimisticTxLogSize     *int   `json:"pessimisticTxLogSize,omitempty"`
	TxSerializableEnabled    bool   `json:"txSerializableEnabled,omitempty"`
	TxManagerLookupClassName string `json:"txManagerLookupClassName,omitempty"`
}

// CacheConfig describes one cache of the cluster.
type CacheConfig struct {
	Name          string `json:"name"`
	Mode          string `json:"mode,omitempty"`
	AtomicityMode string `json:"atomicityMode,omitempty"`
	Backups       *int   `json:"backups,omitempty"`
	StartSize     *int   `json:"startSize,omitempty"`
	ReadFromBackup bool  `json:"readFromBackup,omitempty"`

	MemoryMode       string `json:"memoryMode,omitempty"`
	OffHeapMaxMemory *int64 `json:"offHeapMaxMemory,omitempty"`
	SwapEnabled      bool   `json:"swapEnabled,omitempty"`
	CopyOnRead       bool   `json:"copyOnRead,omitempty"`

	EvictionPolicy *EvictionPolicy         `json:"evictionPolicy,omitempty"`
	NearCache      *NearCacheConfiguration `json:"nearCache,omitempty"`

	SqlEscapeAll            bool              `json:"sqlEscapeAll,omitempty"`
	SqlOnheapRowCacheSize   *int              `json:"sqlOnheapRowCacheSize,omitempty"`
	LongQueryWarningTimeout *int              `json:"longQueryWarningTimeout,omitempty"`
	IndexedTypes            []IndexedTypePair `json:"indexedTypes,omitempty"`
	SqlFunctionClasses      []string          `json:"sqlFunctionClasses,omitempty"`

	RebalanceMode           string `json:"rebalanceMode,omitempty"`
	RebalanceThreadPoolSize *int   `json:"rebalanceThreadPoolSize,omitempty"`
	RebalanceBatchSize      *int   `json:"rebalanceBatchSize,omitempty"`
	RebalanceOrder          *int   `json:"rebalanceOrder,omitempty"`
	RebalanceDelay          *int   `json:"rebalanceDelay,omitempty"`
	RebalanceTimeout        *int   `json:"rebalanceTimeout,omitempty"`
	RebalanceThrottle       *int   `json:"rebalanceThrottle,omitempty"`

	Store        *StoreFactory `json:"store,omitempty"`
	ReadThrough  bool          `json:"readThrough,omitempty"`
	WriteThrough bool          `json:"writeThrough,omitempty"`

	Invalidate                        bool   `json:"invalidate,omitempty"`
	DefaultLockTimeout                *int   `json:"defaultLockTimeout,omitempty"`
	TransactionManagerLookupClassName string `json:"transactionManagerLookupClassName,omitempty"`

	WriteBehindEnabled          bool `json:"writeBehindEnabled,omitempty"`
	WriteBehindBatchSize        *int `json:"writeBehindBatchSize,omitempty"`
	WriteBehindFlushSize        *int `json:"writeBehindFlushSize,omitempty"`
	WriteBehindFlushFrequency   *int `json:"writeBehindFlushFrequency,omitempty"`
	WriteBehindFlushThreadCount *int `json:"writeBehindFlushThreadCount,omitempty"`

	StatisticsEnabled bool `json:"statisticsEnabled,omitempty"`
	ManagementEnabled bool `json:"managementEnabled,omitempty"`

	MaxConcurrentAsyncOperations *int `json:"maxConcurrentAsyncOperations,omitempty"`

	QueryMetadata []CacheTypeMetadata `json:"queryMetadata,omitempty"`
	StoreMetadata []CacheTypeMetadata `json:"storeMetadata,omitempty"`
}

// IndexedTypePair is one key-class/value-class pair registered for SQL indexing.
type IndexedTypePair struct {
	KeyClass   string `json:"keyClass"`
	ValueClass string `json:"valueClass"`
}

// EvictionPolicy selects the replacement strategy for bounded memory regions.
type EvictionPolicy struct {
	Kind   string                `json:"kind"`
	LRU    *LruEvictionPolicy    `json:"lru,omitempty"`
	Random *RandomEvictionPolicy `json:"random,omitempty"`
	FIFO   *FifoEvictionPolicy   `json:"fifo,omitempty"`
	Sorted *SortedEvictionPolicy `json:"sorted,omitempty"`
}

func (p *EvictionPolicy) variant() (interface{}, bool) {
	switch p.Kind {
	case EvictionLRU:
		return p.LRU, true
	case EvictionRandom:
		return p.Random, true
	case EvictionFIFO:
		return p.FIFO, true
	case EvictionSorted:
		return p.Sorted, true
	default:
		return nil, false
	}
}

type LruEvictionPolicy struct {
	BatchSize     *int   `json:"batchSize,omitempty"`
	MaxMemorySize *int64 `json:"maxMemorySize,omitempty"`
	MaxSize       *int   `json:"maxSize,omitempty"`
}

type RandomEvictionPolicy struct {
	MaxSize *int `json:"maxSize,omitempty"`
}

type FifoEvictionPolicy struct {
	BatchSize     *int   `json:"batchSize,omitempty"`
	MaxMemorySize *int64 `json:"maxMemorySize,omitempty"`
	MaxSize       *int   `json:"maxSize,omitempty"`
}

type SortedEvictionPolicy struct {
	BatchSize     *int   `json:"batchSize,omitempty"`
	MaxMemorySize *int64 `json:"maxMemorySize,omitempty"`
	MaxSize       *int   `json:"maxSize,omitempty"`
}

// NearCacheConfiguration is present only when the near cache is enabled.
type NearCacheConfiguration struct {
	NearStartSize  *int            `json:"nearStartSize,omitempty"`
	EvictionPolicy *EvictionPolicy `json:"evictionPolicy,omitempty"`
}

// StoreFactory describes how a cache persists to an external system of record.
type StoreFactory struct {
	Kind          string                          `json:"kind"`
	JdbcPojo      *CacheJdbcPojoStoreFactory      `json:"jdbcPojo,omitempty"`
	JdbcBlob      *CacheJdbcBlobStoreFactory      `json:"jdbcBlob,omitempty"`
	HibernateBlob *CacheHibernateBlobStoreFactory `json:"hibernateBlob,omitempty"`
}

func (s *StoreFactory) variant() (interface{}, bool) {
	switch s.Kind {
	case StoreJdbcPojo:
		return s.JdbcPojo, true
	case StoreJdbcBlob:
		return s.JdbcBlob, true
	case StoreHibernateBlob:
		return s.HibernateBlob, true
	default:
		return nil, false
	}
}

type CacheJdbcPojoStoreFactory struct {
	DataSourceBean string `json:"dataSourceBean,omitempty"`
	Dialect        string `json:"dialect,omitempty"`
}

type CacheJdbcBlobStoreFactory struct {
	User             string `json:"user,omitempty"`
	DataSourceBean   string `json:"dataSourceBean,omitempty"`
	InitSchema       bool   `json:"initSchema,omitempty"`
	CreateTableQuery string `json:"createTableQuery,omitempty"`
	LoadQuery        string `json:"loadQuery,omitempty"`
	InsertQuery      string `json:"insertQuery,omitempty"`
	UpdateQuery      string `json:"updateQuery,omitempty"`
	DeleteQuery      string `json:"deleteQuery,omitempty"`
}

type CacheHibernateBlobStoreFactory struct {
	HibernateProperties []string `json:"hibernateProperties,omitempty"`
}

// CacheTypeMetadata maps a cache's key/value types to a database table and
// to the fields exposed to the SQL query engine.
type CacheTypeMetadata struct {
	Name           string `json:"name"`
	DatabaseSchema string `json:"databaseSchema,omitempty"`
	DatabaseTable  string `json:"databaseTable,omitempty"`
	KeyType        string `json:"keyType,omitempty"`
	ValueType      string `json:"valueType,omitempty"`

	KeyFields   []TypeField `json:"keyFields,omitempty"`
	ValueFields []TypeField `json:"valueFields,omitempty"`

	QueryFields      []QueryField `json:"queryFields,omitempty"`
	AscendingFields  []QueryField `json:"ascendingFields,omitempty"`
	DescendingFields []QueryField `json:"descendingFields,omitempty"`

	TextFields []string     `json:"textFields,omitempty"`
	Groups     []FieldGroup `json:"groups,omitempty"`
}

// TypeField maps one database column to one object field.
type TypeField struct {
	DatabaseName string `json:"databaseName"`
	DatabaseType string `json:"databaseType"` // java.sql.Types constant name
	JavaName     string `json:"javaName"`
	JavaType     string `json:"javaType"`
}

// QueryField is one field exposed to the SQL engine.
type QueryField struct {
	Name      string `json:"name"`
	ClassName string `json:"className"`
}

// FieldGroup is a named composite index group.
type FieldGroup struct {
	Name   string       `json:"name"`
	Fields []GroupField `json:"fields,omitempty"`
}

// GroupField is one member of a composite index group.
type GroupField struct {
	Name       string `json:"name"`
	ClassName  string `json:"className"`
	Descending bool   `json:"descending,omitempty"`
}
