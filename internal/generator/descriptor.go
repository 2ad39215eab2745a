package generator

// Field descriptor kinds. Each kind selects how the nested-bean builder
// turns a model field into a bean property.
type fieldKind int

const (
	fkValue      fieldKind = iota // direct value-to-literal
	fkList                        // ordered collection of scalar values
	fkEnum                        // value qualified with a named enum type
	fkFloat                       // float literal
	fkClassName                   // value names an entry of another closed enumeration
	fkProperties                  // list of "key=value" strings rendered as a map literal
)

type fieldDesc struct {
	Prop      string // emitted property name
	Field     string // Go field name in the variant struct
	Kind      fieldKind
	EnumClass string            // fkEnum: fully qualified enum type
	Classes   map[string]string // fkClassName: closed kind -> target class
}

type beanDesc struct {
	Class  string
	Fields []fieldDesc
}

// Target type names shared by the generators.
const (
	clsIgniteConfiguration      = "org.apache.ignite.configuration.IgniteConfiguration"
	clsCacheConfiguration       = "org.apache.ignite.configuration.CacheConfiguration"
	clsNearCacheConfiguration   = "org.apache.ignite.configuration.NearCacheConfiguration"
	clsAtomicConfiguration      = "org.apache.ignite.configuration.AtomicConfiguration"
	clsTransactionConfiguration = "org.apache.ignite.configuration.TransactionConfiguration"
	clsTcpDiscoverySpi          = "org.apache.ignite.spi.discovery.tcp.TcpDiscoverySpi"
	clsCacheTypeMetadata        = "org.apache.ignite.cache.CacheTypeMetadata"
	clsCacheTypeFieldMetadata   = "org.apache.ignite.cache.CacheTypeFieldMetadata"
	clsIgniteBiTuple            = "org.apache.ignite.lang.IgniteBiTuple"
	clsEventType                = "org.apache.ignite.events.EventType"
	clsSQLTypes                 = "java.sql.Types"

	enumCacheMode              = "org.apache.ignite.cache.CacheMode"
	enumCacheAtomicityMode     = "org.apache.ignite.cache.CacheAtomicityMode"
	enumCacheMemoryMode        = "org.apache.ignite.cache.CacheMemoryMode"
	enumCacheRebalanceMode     = "org.apache.ignite.cache.CacheRebalanceMode"
	enumDeploymentMode         = "org.apache.ignite.configuration.DeploymentMode"
	enumTransactionConcurrency = "org.apache.ignite.transactions.TransactionConcurrency"
	enumTransactionIsolation   = "org.apache.ignite.transactions.TransactionIsolation"
)

// discoveryIPFinders maps each discovery kind to its IP-finder bean shape.
var discoveryIPFinders = map[string]beanDesc{
	DiscoveryStaticIPs: {
		Class: "org.apache.ignite.spi.discovery.tcp.ipfinder.vm.TcpDiscoveryVmIpFinder",
		Fields: []fieldDesc{
			{Prop: "addresses", Field: "Addresses", Kind: fkList},
		},
	},
	DiscoveryMulticast: {
		Class: "org.apache.ignite.spi.discovery.tcp.ipfinder.multicast.TcpDiscoveryMulticastIpFinder",
		Fields: []fieldDesc{
			{Prop: "multicastGroup", Field: "MulticastGroup", Kind: fkValue},
			{Prop: "multicastPort", Field: "MulticastPort", Kind: fkValue},
			{Prop: "responseWaitTime", Field: "ResponseWaitTime", Kind: fkValue},
			{Prop: "addressRequestAttempts", Field: "AddressRequestAttempts", Kind: fkValue},
			{Prop: "localAddress", Field: "LocalAddress", Kind: fkValue},
		},
	},
	DiscoveryS3: {
		Class: "org.apache.ignite.spi.discovery.tcp.ipfinder.s3.TcpDiscoveryS3IpFinder",
		Fields: []fieldDesc{
			{Prop: "bucketName", Field: "BucketName", Kind: fkValue},
		},
	},
	DiscoveryCloud: {
		Class: "org.apache.ignite.spi.discovery.tcp.ipfinder.cloud.TcpDiscoveryCloudIpFinder",
		Fields: []fieldDesc{
			{Prop: "credential", Field: "Credential", Kind: fkValue},
			{Prop: "credentialPath", Field: "CredentialPath", Kind: fkValue},
			{Prop: "identity", Field: "Identity", Kind: fkValue},
			{Prop: "provider", Field: "Provider", Kind: fkValue},
			{Prop: "regions", Field: "Regions", Kind: fkList},
			{Prop: "zones", Field: "Zones", Kind: fkList},
		},
	},
	DiscoveryGoogleStorage: {
		Class: "org.apache.ignite.spi.discovery.tcp.ipfinder.gce.TcpDiscoveryGoogleStorageIpFinder",
		Fields: []fieldDesc{
			{Prop: "projectName", Field: "ProjectName", Kind: fkValue},
			{Prop: "bucketName", Field: "BucketName", Kind: fkValue},
			{Prop: "serviceAccountP12FilePath", Field: "ServiceAccountP12FilePath", Kind: fkValue},
			{Prop: "serviceAccountId", Field: "ServiceAccountId", Kind: fkValue},
		},
	},
	DiscoveryJDBC: {
		Class: "org.apache.ignite.spi.discovery.tcp.ipfinder.jdbc.TcpDiscoveryJdbcIpFinder",
		Fields: []fieldDesc{
			{Prop: "initSchema", Field: "InitSchema", Kind: fkValue},
		},
	},
	DiscoverySharedFS: {
		Class: "org.apache.ignite.spi.discovery.tcp.ipfinder.sharedfs.TcpDiscoverySharedFsIpFinder",
		Fields: []fieldDesc{
			{Prop: "path", Field: "Path", Kind: fkValue},
		},
	},
}

// evictionPolicies maps each eviction kind to its policy bean shape.
var evictionPolicies = map[string]beanDesc{
	EvictionLRU: {
		Class: "org.apache.ignite.cache.eviction.lru.LruEvictionPolicy",
		Fields: []fieldDesc{
			{Prop: "batchSize", Field: "BatchSize", Kind: fkValue},
			{Prop: "maxMemorySize", Field: "MaxMemorySize", Kind: fkValue},
			{Prop: "maxSize", Field: "MaxSize", Kind: fkValue},
		},
	},
	EvictionRandom: {
		Class: "org.apache.ignite.cache.eviction.random.RandomEvictionPolicy",
		Fields: []fieldDesc{
			{Prop: "maxSize", Field: "MaxSize", Kind: fkValue},
		},
	},
	EvictionFIFO: {
		Class: "org.apache.ignite.cache.eviction.fifo.FifoEvictionPolicy",
		Fields: []fieldDesc{
			{Prop: "batchSize", Field: "BatchSize", Kind: fkValue},
			{Prop: "maxMemorySize", Field: "MaxMemorySize", Kind: fkValue},
			{Prop: "maxSize", Field: "MaxSize", Kind: fkValue},
		},
	},
	EvictionSorted: {
		Class: "org.apache.ignite.cache.eviction.sorted.SortedEvictionPolicy",
		Fields: []fieldDesc{
			{Prop: "batchSize", Field: "BatchSize", Kind: fkValue},
			{Prop: "maxMemorySize", Field: "MaxMemorySize", Kind: fkValue},
			{Prop: "maxSize", Field: "MaxSize", Kind: fkValue},
		},
	},
}

// marshallers maps each marshaller kind to its bean shape.
var marshallers = map[string]beanDesc{
	MarshallerOptimized: {
		Class: "org.apache.ignite.marshaller.optimized.OptimizedMarshaller",
		Fields: []fieldDesc{
			{Prop: "poolSize", Field: "PoolSize", Kind: fkValue},
			{Prop: "requireSerializable", Field: "RequireSerializable", Kind: fkValue},
		},
	},
	MarshallerJdk: {
		Class:  "org.apache.ignite.marshaller.jdk.JdkMarshaller",
		Fields: nil,
	},
}

// swapSpis maps each swap kind to its SPI bean shape.
var swapSpis = map[string]beanDesc{
	SwapFileSpace: {
		Class: "org.apache.ignite.spi.swapspace.file.FileSwapSpaceSpi",
		Fields: []fieldDesc{
			{Prop: "baseDirectory", Field: "BaseDirectory", Kind: fkValue},
			{Prop: "readStripesNumber", Field: "ReadStripesNumber", Kind: fkValue},
			{Prop: "maximumSparsity", Field: "MaximumSparsity", Kind: fkFloat},
			{Prop: "maxWriteQueueSize", Field: "MaxWriteQueueSize", Kind: fkValue},
			{Prop: "writeBufferSize", Field: "WriteBufferSize", Kind: fkValue},
		},
	},
}

// dialectClasses maps a SQL dialect kind to its JDBC dialect class.
var dialectClasses = map[string]string{
	"Generic":    "org.apache.ignite.cache.store.jdbc.dialect.BasicJdbcDialect",
	"Oracle":     "org.apache.ignite.cache.store.jdbc.dialect.OracleDialect",
	"DB2":        "org.apache.ignite.cache.store.jdbc.dialect.DB2Dialect",
	"SQLServer":  "org.apache.ignite.cache.store.jdbc.dialect.SQLServerDialect",
	"MySQL":      "org.apache.ignite.cache.store.jdbc.dialect.MySQLDialect",
	"PostgreSQL": "org.apache.ignite.cache.store.jdbc.dialect.BasicJdbcDialect",
	"H2":         "org.apache.ignite.cache.store.jdbc.dialect.H2Dialect",
}

// dataSourceClasses maps a SQL dialect kind to the datasource class emitted
// for the shared datasource bean.
var dataSourceClasses = map[string]string{
	"Generic":    "com.mchange.v2.c3p0.ComboPooledDataSource",
	"Oracle":     "oracle.jdbc.pool.OracleDataSource",
	"DB2":        "com.ibm.db2.jcc.DB2ConnectionPoolDataSource",
	"SQLServer":  "com.microsoft.sqlserver.jdbc.SQLServerDataSource",
	"MySQL":      "com.mysql.jdbc.jdbc2.optional.MysqlDataSource",
	"PostgreSQL": "org.postgresql.ds.PGPoolingDataSource",
	"H2":         "org.h2.jdbcx.JdbcDataSource",
}

// dataSourceURLHints maps a SQL dialect kind to the connection URL template
// written to the companion secrets file.
var dataSourceURLHints = map[string]string{
	"Generic":    "jdbc:[database]",
	"Oracle":     "jdbc:oracle:thin:@[host]:[port]:[database]",
	"DB2":        "jdbc:db2://[host]:[port]/[database]",
	"SQLServer":  "jdbc:sqlserver://[host]:[port][;databaseName=database]",
	"MySQL":      "jdbc:mysql://[host]:[port]/[database]",
	"PostgreSQL": "jdbc:postgresql://[host]:[port]/[database]",
	"H2":         "jdbc:h2:tcp://[host]/[database]",
}

// storeFactories maps each store-factory kind to its bean shape.
var storeFactories = map[string]beanDesc{
	StoreJdbcPojo: {
		Class: "org.apache.ignite.cache.store.jdbc.CacheJdbcPojoStoreFactory",
		Fields: []fieldDesc{
			{Prop: "dataSourceBean", Field: "DataSourceBean", Kind: fkValue},
			{Prop: "dialect", Field: "Dialect", Kind: fkClassName, Classes: dialectClasses},
		},
	},
	StoreJdbcBlob: {
		Class: "org.apache.ignite.cache.store.jdbc.CacheJdbcBlobStoreFactory",
		Fields: []fieldDesc{
			{Prop: "user", Field: "User", Kind: fkValue},
			{Prop: "dataSourceBean", Field: "DataSourceBean", Kind: fkValue},
			{Prop: "initSchema", Field: "InitSchema", Kind: fkValue},
			{Prop: "createTableQuery", Field: "CreateTableQuery", Kind: fkValue},
			{Prop: "loadQuery", Field: "LoadQuery", Kind: fkValue},
			{Prop: "insertQuery", Field: "InsertQuery", Kind: fkValue},
			{Prop: "updateQuery", Field: "UpdateQuery", Kind: fkValue},
			{Prop: "deleteQuery", Field: "DeleteQuery", Kind: fkValue},
		},
	},
	StoreHibernateBlob: {
		Class: "org.apache.ignite.cache.store.hibernate.CacheHibernateBlobStoreFactory",
		Fields: []fieldDesc{
			{Prop: "hibernateProperties", Field: "HibernateProperties", Kind: fkProperties},
		},
	},
}
