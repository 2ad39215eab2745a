package generator

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func minimalCluster() *ClusterConfig {
	return &ClusterConfig{
		Name: "demo",
		Discovery: Discovery{
			Kind: DiscoveryStaticIPs,
			StaticIPs: &StaticIPsDiscovery{
				Addresses: []string{"127.0.0.1:47500..47510"},
			},
		},
	}
}

func jdbcCache(name, dsBean string) CacheConfig {
	return CacheConfig{
		Name: name,
		Store: &StoreFactory{
			Kind: StoreJdbcPojo,
			JdbcPojo: &CacheJdbcPojoStoreFactory{
				DataSourceBean: dsBean,
				Dialect:        "PostgreSQL",
			},
		},
		ReadThrough:  true,
		WriteThrough: true,
	}
}

var allFormats = []Format{FormatDeclarative, FormatSourceCode, FormatContainerScript}

// blankLineContract checks the spacing invariants every backend must hold:
// no two consecutive blank lines and no blank line directly before a
// closing block marker.
func blankLineContract(t *testing.T, content string) {
	t.Helper()
	assert.NotContains(t, content, "\n\n\n")
	assert.False(t, regexp.MustCompile(`\n\n\s*(</|\})`).MatchString(content),
		"blank line before closing block marker")
}

func TestGenerateDeclarativeMinimalCluster(t *testing.T) {
	artifact, err := Generate(minimalCluster(), FormatDeclarative, Options{})
	require.NoError(t, err)

	content := artifact.Content
	assert.Contains(t, content, `<bean class="org.apache.ignite.configuration.IgniteConfiguration">`)
	assert.Contains(t, content, "org.apache.ignite.spi.discovery.tcp.TcpDiscoverySpi")
	assert.Contains(t, content, "TcpDiscoveryVmIpFinder")
	assert.Contains(t, content, "<value>127.0.0.1:47500..47510</value>")
	assert.Contains(t, content, "</beans>")
	assert.Empty(t, artifact.DataSources)
	blankLineContract(t, content)
}

func TestGenerateSourceCodeMinimalCluster(t *testing.T) {
	artifact, err := Generate(minimalCluster(), FormatSourceCode, Options{})
	require.NoError(t, err)

	content := artifact.Content
	assert.Contains(t, content, "import org.apache.ignite.configuration.IgniteConfiguration;")
	assert.Contains(t, content, "IgniteConfiguration cfg = new IgniteConfiguration();")
	assert.Contains(t, content, `setAddresses(Arrays.asList("127.0.0.1:47500..47510"));`)
	assert.Contains(t, content, "import java.util.Arrays;")
	assert.Contains(t, content, "cfg.setDiscoverySpi(discoverySpi);")
	blankLineContract(t, content)
}

func TestGenerateDeterministic(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{jdbcCache("A", "ds1"), jdbcCache("B", "ds1")}

	for _, format := range allFormats {
		first, err := Generate(cluster, format, Options{})
		require.NoError(t, err)
		second, err := Generate(cluster, format, Options{})
		require.NoError(t, err)
		assert.Equal(t, first.Content, second.Content, "format %s", format)
	}
}

func TestGenerateUnknownDiscoveryKindFailsEveryFormat(t *testing.T) {
	cluster := minimalCluster()
	cluster.Discovery = Discovery{Kind: "Gossip"}

	for _, format := range allFormats {
		artifact, err := Generate(cluster, format, Options{})
		require.Error(t, err, "format %s", format)
		assert.Nil(t, artifact)

		var unknownErr *UnknownKindError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, PhaseCluster, unknownErr.Phase)
		assert.Equal(t, "discovery", unknownErr.Field)
		assert.Equal(t, "Gossip", unknownErr.Value)
	}
}

func TestGenerateUnknownEvictionKindFails(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{{
		Name:           "A",
		EvictionPolicy: &EvictionPolicy{Kind: "Clock"},
	}}

	artifact, err := Generate(cluster, FormatDeclarative, Options{})
	require.Error(t, err)
	assert.Nil(t, artifact)

	var unknownErr *UnknownKindError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, PhaseCache, unknownErr.Phase)
	assert.Equal(t, "evictionPolicy", unknownErr.Field)
}

func TestGenerateUnknownEventGroupFails(t *testing.T) {
	cluster := minimalCluster()
	cluster.IncludeEventTypes = []string{"EVTS_CACHE", "EVTS_NOSUCH"}

	for _, format := range allFormats {
		_, err := Generate(cluster, format, Options{})
		require.Error(t, err, "format %s", format)

		var unknownErr *UnknownKindError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "includeEventTypes", unknownErr.Field)
		assert.Equal(t, "EVTS_NOSUCH", unknownErr.Value)
	}
}

func TestAbsentOptionalsAreOmitted(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{{Name: "plain"}}

	for _, format := range []Format{FormatDeclarative, FormatSourceCode} {
		artifact, err := Generate(cluster, format, Options{})
		require.NoError(t, err)
		assert.NotContains(t, artifact.Content, "EvictionPolicy", "format %s", format)
		assert.NotContains(t, artifact.Content, "NearCacheConfiguration", "format %s", format)
		assert.NotContains(t, artifact.Content, "backups", "format %s", format)
	}
}

func TestSharedDataSourceEmittedOnce(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{jdbcCache("A", "ds1"), jdbcCache("B", "ds1")}

	artifact, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)

	content := artifact.Content
	assert.Equal(t, 1, strings.Count(content, `<bean id="ds1" class="org.postgresql.ds.PGPoolingDataSource">`))
	assert.Equal(t, 2, strings.Count(content, `<property name="dataSourceBean" value="ds1"/>`))
	require.Len(t, artifact.DataSources, 1)
	assert.Equal(t, DataSourceRef{ID: "ds1", Dialect: "PostgreSQL"}, artifact.DataSources[0])

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(java.Content, "PGPoolingDataSource ds1 = new PGPoolingDataSource();"))
	assert.Equal(t, 2, strings.Count(java.Content, `setDataSourceBean("ds1");`))
}

func TestDistinctDataSourcesKeepFirstUseOrder(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{jdbcCache("A", "dsB"), jdbcCache("B", "dsA"), jdbcCache("C", "dsB")}

	artifact, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)

	require.Len(t, artifact.DataSources, 2)
	assert.Equal(t, "dsB", artifact.DataSources[0].ID)
	assert.Equal(t, "dsA", artifact.DataSources[1].ID)
}

func TestTypeMetadataDedupFirstWins(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{{
		Name: "people",
		QueryMetadata: []CacheTypeMetadata{
			{Name: "Person", DatabaseSchema: "first"},
		},
		StoreMetadata: []CacheTypeMetadata{
			{Name: "Person", DatabaseSchema: "second"},
			{Name: "Address", DatabaseTable: "ADDRESS"},
		},
	}}

	artifact, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)

	content := artifact.Content
	assert.Equal(t, 2, strings.Count(content, `<bean class="org.apache.ignite.cache.CacheTypeMetadata">`))
	assert.Contains(t, content, `value="first"`)
	assert.NotContains(t, content, `value="second"`)
	assert.Contains(t, content, `value="ADDRESS"`)
}

func TestTypeMetadataSharedAcrossCachesDeclaredOnce(t *testing.T) {
	person := CacheTypeMetadata{
		Name:          "Person",
		DatabaseTable: "PERSON",
		QueryFields:   []QueryField{{Name: "firstName", ClassName: "java.lang.String"}},
	}
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{
		{Name: "A", QueryMetadata: []CacheTypeMetadata{person}},
		{Name: "B", StoreMetadata: []CacheTypeMetadata{person}},
	}

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(java.Content, "CacheTypeMetadata typeMetaPerson = new CacheTypeMetadata();"))
	assert.Equal(t, 1, strings.Count(java.Content, "cacheATypeMetadata.add(typeMetaPerson);"))
	assert.Equal(t, 1, strings.Count(java.Content, "cacheBTypeMetadata.add(typeMetaPerson);"))
	blankLineContract(t, java.Content)

	xml, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(xml.Content, `<bean id="typeMetaPerson" class="org.apache.ignite.cache.CacheTypeMetadata">`))
	assert.Equal(t, 1, strings.Count(xml.Content, `<ref bean="typeMetaPerson"/>`))
	assert.Equal(t, 1, strings.Count(xml.Content, `<bean id="typeMetaPerson"`))
	blankLineContract(t, xml.Content)
}

func TestChildVarDropsEchoedParentPrefix(t *testing.T) {
	assert.Equal(t, "discoverySpi", childVar("cfg", "discoverySpi"))
	assert.Equal(t, "cacheAStoreFactory", childVar("cacheA", "cacheStoreFactory"))
	assert.Equal(t, "cacheATypeMetadata", childVar("cacheA", "typeMetadata"))
	assert.Equal(t, "discoverySpiIpFinder", childVar("discoverySpi", "ipFinder"))

	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{jdbcCache("A", "dsPostgres")}
	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Contains(t, java.Content, "cacheAStoreFactory")
	assert.NotContains(t, java.Content, "cacheACacheStoreFactory")
}

func TestTypeMetadataFieldsUseConstructor(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{{
		Name: "people",
		QueryMetadata: []CacheTypeMetadata{{
			Name:      "Person",
			KeyType:   "java.lang.Long",
			ValueType: "org.example.Person",
			KeyFields: []TypeField{
				{DatabaseName: "ID", DatabaseType: "BIGINT", JavaName: "id", JavaType: "java.lang.Long"},
			},
			QueryFields: []QueryField{
				{Name: "firstName", ClassName: "java.lang.String"},
			},
			Groups: []FieldGroup{{
				Name: "fullName",
				Fields: []GroupField{
					{Name: "firstName", ClassName: "java.lang.String"},
					{Name: "lastName", ClassName: "java.lang.String", Descending: true},
				},
			}},
		}},
	}}

	xml, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)
	assert.Contains(t, xml.Content, `<constructor-arg value="ID"/>`)
	assert.Contains(t, xml.Content, `<util:constant static-field="java.sql.Types.BIGINT"/>`)
	assert.Contains(t, xml.Content, "org.apache.ignite.lang.IgniteBiTuple")
	blankLineContract(t, xml.Content)

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Contains(t, java.Content, `new CacheTypeFieldMetadata("ID", Types.BIGINT, "id", Long.class)`)
	assert.Contains(t, java.Content, "import java.sql.Types;")
	assert.Contains(t, java.Content, `grpFullName.put("lastName", new IgniteBiTuple<Class<?>, Boolean>(String.class, true));`)
	assert.Contains(t, java.Content, "Map<String, Class<?>>")
	blankLineContract(t, java.Content)
}

func TestMultiGroupEventTypes(t *testing.T) {
	cluster := minimalCluster()
	cluster.IncludeEventTypes = []string{"EVTS_CACHE", "EVTS_DISCOVERY"}

	artifact, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)

	content := artifact.Content
	assert.Contains(t, content, "int[] events = new int[EventType.EVTS_CACHE.length + EventType.EVTS_DISCOVERY.length];")
	assert.Contains(t, content, "System.arraycopy(EventType.EVTS_CACHE, 0, events, k, EventType.EVTS_CACHE.length);")
	assert.Contains(t, content, "cfg.setIncludeEventTypes(events);")

	for group := range eventGroups {
		if group == "EVTS_CACHE" || group == "EVTS_DISCOVERY" {
			continue
		}
		assert.NotContains(t, content, group)
	}

	expanded, err := expandEventGroups(cluster.IncludeEventTypes)
	require.NoError(t, err)
	assert.Len(t, expanded, len(eventGroups["EVTS_CACHE"])+len(eventGroups["EVTS_DISCOVERY"]))
}

func TestSingleEventGroupDirectReference(t *testing.T) {
	cluster := minimalCluster()
	cluster.IncludeEventTypes = []string{"EVTS_CACHE"}

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Contains(t, java.Content, "cfg.setIncludeEventTypes(EventType.EVTS_CACHE);")
	assert.NotContains(t, java.Content, "System.arraycopy")

	xml, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)
	assert.Contains(t, xml.Content, `<util:constant static-field="org.apache.ignite.events.EventType.EVTS_CACHE"/>`)
}

func TestCacheNamesStableUnderReorder(t *testing.T) {
	forward := minimalCluster()
	forward.Caches = []CacheConfig{{Name: "first-cache"}, {Name: "second cache"}}

	backward := minimalCluster()
	backward.Caches = []CacheConfig{{Name: "second cache"}, {Name: "first-cache"}}

	fwd, err := Generate(forward, FormatSourceCode, Options{})
	require.NoError(t, err)
	bwd, err := Generate(backward, FormatSourceCode, Options{})
	require.NoError(t, err)

	for _, content := range []string{fwd.Content, bwd.Content} {
		assert.Contains(t, content, "cacheFirstcache")
		assert.Contains(t, content, "cacheSecondcache")
	}
	assert.Contains(t, fwd.Content, "cfg.setCacheConfiguration(cacheFirstcache, cacheSecondcache);")
	assert.Contains(t, bwd.Content, "cfg.setCacheConfiguration(cacheSecondcache, cacheFirstcache);")
}

func TestClientModeEmittedFirst(t *testing.T) {
	artifact, err := Generate(minimalCluster(), FormatSourceCode, Options{ClientMode: true})
	require.NoError(t, err)

	content := artifact.Content
	clientIdx := strings.Index(content, "cfg.setClientMode(true);")
	discoveryIdx := strings.Index(content, "cfg.setDiscoverySpi(")
	require.GreaterOrEqual(t, clientIdx, 0)
	require.GreaterOrEqual(t, discoveryIdx, 0)
	assert.Less(t, clientIdx, discoveryIdx)
}

func TestGenerateAsClassWrapsBody(t *testing.T) {
	artifact, err := Generate(minimalCluster(), FormatSourceCode, Options{GenerateAsClass: true})
	require.NoError(t, err)

	content := artifact.Content
	assert.True(t, strings.HasPrefix(content, "package config;"))
	assert.Contains(t, content, "public class ConfigurationFactory {")
	assert.Contains(t, content, "public static IgniteConfiguration createConfiguration() {")
	assert.Contains(t, content, "return cfg;")
	blankLineContract(t, content)
}

func TestMarshallerEmittedOnce(t *testing.T) {
	cluster := minimalCluster()
	cluster.Marshaller = &Marshaller{
		Kind:      MarshallerOptimized,
		Optimized: &OptimizedMarshaller{PoolSize: intPtr(4), RequireSerializable: true},
	}

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(java.Content, "new OptimizedMarshaller()"))
	assert.Contains(t, java.Content, "setPoolSize(4);")
	assert.Contains(t, java.Content, "setRequireSerializable(true);")

	xml, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(xml.Content, "OptimizedMarshaller"))
}

func TestEmptyMarshallerConstructedInline(t *testing.T) {
	cluster := minimalCluster()
	cluster.Marshaller = &Marshaller{Kind: MarshallerJdk, Jdk: &JdkMarshaller{}}

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Contains(t, java.Content, "cfg.setMarshaller(new JdkMarshaller());")
}

func TestSwapSpiFloatLiteral(t *testing.T) {
	sparsity := 0.3
	cluster := minimalCluster()
	cluster.SwapSpaceSpi = &SwapSpaceSpi{
		Kind:          SwapFileSpace,
		FileSwapSpace: &FileSwapSpaceSpi{MaximumSparsity: &sparsity},
	}

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Contains(t, java.Content, "setMaximumSparsity(0.3f);")

	xml, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)
	assert.Contains(t, xml.Content, `<property name="maximumSparsity" value="0.3"/>`)
}

func TestHibernatePropertiesRendering(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{{
		Name: "hib",
		Store: &StoreFactory{
			Kind: StoreHibernateBlob,
			HibernateBlob: &CacheHibernateBlobStoreFactory{
				HibernateProperties: []string{"connection.url=jdbc:h2:mem:", "show_sql=true"},
			},
		},
	}}

	xml, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)
	assert.Contains(t, xml.Content, `<prop key="connection.url">jdbc:h2:mem:</prop>`)

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Contains(t, java.Content, `.setProperty("connection.url", "jdbc:h2:mem:");`)
}

func TestHibernatePropertiesMalformedEntryFails(t *testing.T) {
	cluster := minimalCluster()
	cluster.Caches = []CacheConfig{{
		Name: "hib",
		Store: &StoreFactory{
			Kind: StoreHibernateBlob,
			HibernateBlob: &CacheHibernateBlobStoreFactory{
				HibernateProperties: []string{"show_sql"},
			},
		},
	}}

	_, err := Generate(cluster, FormatDeclarative, Options{})
	require.Error(t, err)

	var malformed *MalformedFieldError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "hibernateProperties", malformed.Field)
}

func TestContainerScript(t *testing.T) {
	artifact, err := Generate(minimalCluster(), FormatContainerScript, Options{OSTag: "ubuntu:14.04"})
	require.NoError(t, err)
	assert.Contains(t, artifact.Content, "FROM ubuntu:14.04")
	assert.Contains(t, artifact.Content, "config/demo-server.xml")
	blankLineContract(t, artifact.Content)

	defaulted, err := Generate(minimalCluster(), FormatContainerScript, Options{})
	require.NoError(t, err)
	assert.Contains(t, defaulted.Content, "FROM "+defaultOSTag)
}

func TestContainerScriptTemplateSubstitution(t *testing.T) {
	cluster := minimalCluster()
	cluster.Name = "My Cluster!"

	artifact, err := Generate(cluster, FormatContainerScript, Options{OSTag: "ubuntu:14.04"})
	require.NoError(t, err)
	assert.NotContains(t, artifact.Content, "{{")
	assert.Contains(t, artifact.Content, "# Start from a ubuntu:14.04 image.")
	assert.Contains(t, artifact.Content, "CMD $IGNITE_HOME/bin/ignite.sh config/MyCluster-server.xml")
	blankLineContract(t, artifact.Content)
}

func TestUnsupportedFormatRejected(t *testing.T) {
	_, err := Generate(minimalCluster(), Format("yaml"), Options{})
	require.Error(t, err)
}

func TestSecretProperties(t *testing.T) {
	content := SecretProperties([]DataSourceRef{{ID: "ds1", Dialect: "PostgreSQL"}})

	assert.Contains(t, content, "ds1.jdbc.url=jdbc:postgresql://[host]:[port]/[database]")
	assert.Contains(t, content, "ds1.jdbc.username=")
	assert.Contains(t, content, "ds1.jdbc.password=")
}

func TestBeanName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "orders", "cacheOrders"},
		{"punctuation stripped", "my-cache 1", "cacheMycache1"},
		{"underscore kept", "my_cache", "cacheMy_cache"},
		{"empty falls back", "", "cacheDflt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, beanName("cache", tt.input))
		})
	}
}

func TestRichClusterBlankLineContract(t *testing.T) {
	timeout := 10000
	cluster := minimalCluster()
	cluster.NetworkTimeout = &timeout
	cluster.DeploymentMode = "SHARED"
	cluster.IncludeEventTypes = []string{"EVTS_CACHE", "EVTS_DISCOVERY", "EVTS_TASK_EXECUTION"}
	cluster.Marshaller = &Marshaller{Kind: MarshallerJdk, Jdk: &JdkMarshaller{}}
	cluster.PeerClassLoadingEnabled = true
	cluster.TransactionConfiguration = &TransactionConfiguration{
		DefaultTxConcurrency: "PESSIMISTIC",
		DefaultTxIsolation:   "REPEATABLE_READ",
	}
	cache := jdbcCache("orders", "ds1")
	cache.Mode = "PARTITIONED"
	cache.AtomicityMode = "TRANSACTIONAL"
	cache.Backups = intPtr(1)
	cache.EvictionPolicy = &EvictionPolicy{
		Kind: EvictionLRU,
		LRU:  &LruEvictionPolicy{MaxSize: intPtr(100000)},
	}
	cache.NearCache = &NearCacheConfiguration{NearStartSize: intPtr(1024)}
	cache.IndexedTypes = []IndexedTypePair{{KeyClass: "java.lang.Long", ValueClass: "org.example.Order"}}
	cluster.Caches = []CacheConfig{cache, {Name: "plain"}}

	for _, opts := range []Options{{}, {ClientMode: true}, {GenerateAsClass: true}} {
		for _, format := range allFormats {
			artifact, err := Generate(cluster, format, opts)
			require.NoError(t, err, "format %s", format)
			blankLineContract(t, artifact.Content)
		}
	}
}

func TestEnumPropertiesQualifiedInJava(t *testing.T) {
	cluster := minimalCluster()
	cache := CacheConfig{Name: "orders", Mode: "PARTITIONED", AtomicityMode: "ATOMIC"}
	cluster.Caches = []CacheConfig{cache}

	java, err := Generate(cluster, FormatSourceCode, Options{})
	require.NoError(t, err)
	assert.Contains(t, java.Content, "cacheOrders.setCacheMode(CacheMode.PARTITIONED);")
	assert.Contains(t, java.Content, "cacheOrders.setAtomicityMode(CacheAtomicityMode.ATOMIC);")
	assert.Contains(t, java.Content, "import org.apache.ignite.cache.CacheMode;")

	xml, err := Generate(cluster, FormatDeclarative, Options{})
	require.NoError(t, err)
	assert.Contains(t, xml.Content, `<property name="cacheMode" value="PARTITIONED"/>`)
}
