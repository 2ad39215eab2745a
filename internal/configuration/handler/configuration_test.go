package handler

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/gridpoint/console/internal/generator"
	"github.com/gridpoint/console/internal/repositories/sql/cache"
	"github.com/gridpoint/console/internal/repositories/sql/cluster"
	"github.com/gridpoint/console/internal/repositories/sql/metadata"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type mockClusterRepo struct {
	mock.Mock
}

func (m *mockClusterRepo) GetAll(userEmail string) ([]cluster.Cluster, error) {
	args := m.Called(userEmail)
	return args.Get(0).([]cluster.Cluster), args.Error(1)
}

func (m *mockClusterRepo) GetByName(userEmail, name string) (*cluster.Cluster, error) {
	args := m.Called(userEmail, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cluster.Cluster), args.Error(1)
}

func (m *mockClusterRepo) Create(row *cluster.Cluster) (uint, error) {
	args := m.Called(row)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockClusterRepo) Update(row *cluster.Cluster) error {
	return m.Called(row).Error(0)
}

func (m *mockClusterRepo) Delete(userEmail, name string) error {
	return m.Called(userEmail, name).Error(0)
}

type mockCacheRepo struct {
	mock.Mock
}

func (m *mockCacheRepo) GetByCluster(clusterID uint) ([]cache.Cache, error) {
	args := m.Called(clusterID)
	return args.Get(0).([]cache.Cache), args.Error(1)
}

func (m *mockCacheRepo) GetByName(clusterID uint, name string) (*cache.Cache, error) {
	args := m.Called(clusterID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.Cache), args.Error(1)
}

func (m *mockCacheRepo) Create(row *cache.Cache) (uint, error) {
	args := m.Called(row)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockCacheRepo) Update(row *cache.Cache) error {
	return m.Called(row).Error(0)
}

func (m *mockCacheRepo) Delete(clusterID uint, name string) error {
	return m.Called(clusterID, name).Error(0)
}

func (m *mockCacheRepo) DeleteByCluster(clusterID uint) error {
	return m.Called(clusterID).Error(0)
}

type mockMetadataRepo struct {
	mock.Mock
}

func (m *mockMetadataRepo) GetAll(userEmail string) ([]metadata.Metadata, error) {
	args := m.Called(userEmail)
	return args.Get(0).([]metadata.Metadata), args.Error(1)
}

func (m *mockMetadataRepo) GetByName(userEmail, name string) (*metadata.Metadata, error) {
	args := m.Called(userEmail, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metadata.Metadata), args.Error(1)
}

func (m *mockMetadataRepo) Create(row *metadata.Metadata) (uint, error) {
	args := m.Called(row)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockMetadataRepo) Update(row *metadata.Metadata) error {
	return m.Called(row).Error(0)
}

func (m *mockMetadataRepo) Delete(userEmail, name string) error {
	return m.Called(userEmail, name).Error(0)
}

const testUser = "dev@example.com"

func newTestHandler() (*ConfigurationHandler, *mockClusterRepo, *mockCacheRepo, *mockMetadataRepo) {
	clusterRepo := &mockClusterRepo{}
	cacheRepo := &mockCacheRepo{}
	metadataRepo := &mockMetadataRepo{}
	h := &ConfigurationHandler{
		clusterRepo:  clusterRepo,
		cacheRepo:    cacheRepo,
		metadataRepo: metadataRepo,
	}
	return h, clusterRepo, cacheRepo, metadataRepo
}

func testClusterDoc(t *testing.T, name string) string {
	t.Helper()
	doc, err := json.Marshal(&generator.ClusterConfig{
		Name: name,
		Discovery: generator.Discovery{
			Kind:      generator.DiscoveryStaticIPs,
			StaticIPs: &generator.StaticIPsDiscovery{Addresses: []string{"127.0.0.1:47500"}},
		},
	})
	require.NoError(t, err)
	return string(doc)
}

func testCacheDoc(t *testing.T, name string) string {
	t.Helper()
	doc, err := json.Marshal(&generator.CacheConfig{Name: name, Mode: "PARTITIONED"})
	require.NoError(t, err)
	return string(doc)
}

func TestSaveClusterCreatesWhenMissing(t *testing.T) {
	h, clusterRepo, _, _ := newTestHandler()
	clusterRepo.On("GetByName", testUser, "dev").Return(nil, gorm.ErrRecordNotFound)
	clusterRepo.On("Create", mock.MatchedBy(func(row *cluster.Cluster) bool {
		return row.UserEmail == testUser && row.Name == "dev"
	})).Return(uint(1), nil)

	err := h.SaveCluster(testUser, &ClusterRequest{
		Name: "dev",
		Document: generator.ClusterConfig{
			Caches: []generator.CacheConfig{{Name: "leaks-into-row"}},
		},
	})

	require.NoError(t, err)
	clusterRepo.AssertExpectations(t)
	// embedded caches are owned by the cache endpoints, not the cluster row
	created := clusterRepo.Calls[1].Arguments.Get(0).(*cluster.Cluster)
	assert.NotContains(t, created.Document, "leaks-into-row")
}

func TestSaveClusterUpdatesExisting(t *testing.T) {
	h, clusterRepo, _, _ := newTestHandler()
	existing := &cluster.Cluster{ID: 7, UserEmail: testUser, Name: "dev", Document: "{}"}
	clusterRepo.On("GetByName", testUser, "dev").Return(existing, nil)
	clusterRepo.On("Update", existing).Return(nil)

	err := h.SaveCluster(testUser, &ClusterRequest{Name: "dev"})

	require.NoError(t, err)
	clusterRepo.AssertExpectations(t)
	clusterRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSaveClusterRequiresName(t *testing.T) {
	h, clusterRepo, _, _ := newTestHandler()

	err := h.SaveCluster(testUser, &ClusterRequest{})

	require.Error(t, err)
	clusterRepo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}

func TestGetClusterListsCacheNames(t *testing.T) {
	h, clusterRepo, cacheRepo, _ := newTestHandler()
	clusterRepo.On("GetByName", testUser, "dev").
		Return(&cluster.Cluster{ID: 3, Name: "dev", Document: testClusterDoc(t, "dev")}, nil)
	cacheRepo.On("GetByCluster", uint(3)).Return([]cache.Cache{
		{Name: "orders", Document: testCacheDoc(t, "orders")},
		{Name: "users", Document: testCacheDoc(t, "users")},
	}, nil)

	response, err := h.GetCluster(testUser, "dev")

	require.NoError(t, err)
	assert.Equal(t, "dev", response.Name)
	assert.Equal(t, []string{"orders", "users"}, response.Caches)
}

func TestDeleteClusterRemovesCachesFirst(t *testing.T) {
	h, clusterRepo, cacheRepo, _ := newTestHandler()
	clusterRepo.On("GetByName", testUser, "dev").
		Return(&cluster.Cluster{ID: 3, Name: "dev"}, nil)
	cacheRepo.On("DeleteByCluster", uint(3)).Return(nil)
	clusterRepo.On("Delete", testUser, "dev").Return(nil)

	require.NoError(t, h.DeleteCluster(testUser, "dev"))
	clusterRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}

func TestSaveCacheRejectsUnknownCluster(t *testing.T) {
	h, clusterRepo, cacheRepo, _ := newTestHandler()
	clusterRepo.On("GetByName", testUser, "ghost").Return(nil, gorm.ErrRecordNotFound)

	err := h.SaveCache(testUser, &CacheRequest{
		ClusterName: "ghost",
		Document:    generator.CacheConfig{Name: "orders"},
	})

	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	cacheRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSaveMetadataUpsertsByName(t *testing.T) {
	h, _, _, metadataRepo := newTestHandler()
	existing := &metadata.Metadata{ID: 4, UserEmail: testUser, Name: "Person", Document: "{}"}
	metadataRepo.On("GetByName", testUser, "Person").Return(existing, nil)
	metadataRepo.On("Update", existing).Return(nil)

	err := h.SaveMetadata(testUser, &MetadataRequest{
		Document: generator.CacheTypeMetadata{Name: "Person"},
	})

	require.NoError(t, err)
	metadataRepo.AssertExpectations(t)
}

func TestGenerateAssemblesCachesInPositionOrder(t *testing.T) {
	h, clusterRepo, cacheRepo, _ := newTestHandler()
	clusterRepo.On("GetByName", testUser, "dev").
		Return(&cluster.Cluster{ID: 3, Name: "dev", Document: testClusterDoc(t, "dev")}, nil)
	cacheRepo.On("GetByCluster", uint(3)).Return([]cache.Cache{
		{Name: "orders", Position: 0, Document: testCacheDoc(t, "orders")},
		{Name: "users", Position: 1, Document: testCacheDoc(t, "users")},
	}, nil)

	response, err := h.Generate(testUser, &GenerateRequest{
		ClusterName: "dev",
		Format:      string(generator.FormatDeclarative),
	})

	require.NoError(t, err)
	first := bytes.Index([]byte(response.Content), []byte(`value="orders"`))
	second := bytes.Index([]byte(response.Content), []byte(`value="users"`))
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	h, clusterRepo, cacheRepo, _ := newTestHandler()
	clusterRepo.On("GetByName", testUser, "dev").
		Return(&cluster.Cluster{ID: 3, Name: "dev", Document: testClusterDoc(t, "dev")}, nil)
	cacheRepo.On("GetByCluster", uint(3)).Return([]cache.Cache{}, nil)

	_, err := h.Generate(testUser, &GenerateRequest{ClusterName: "dev", Format: "yaml"})

	var malformed *generator.MalformedFieldError
	require.ErrorAs(t, err, &malformed)
}

func TestDownloadPackagesEveryArtifact(t *testing.T) {
	h, clusterRepo, cacheRepo, _ := newTestHandler()
	clusterRepo.On("GetByName", testUser, "dev").
		Return(&cluster.Cluster{ID: 3, Name: "dev", Document: testClusterDoc(t, "dev")}, nil)
	cacheRepo.On("GetByCluster", uint(3)).Return([]cache.Cache{
		{Name: "orders", Document: testCacheDoc(t, "orders")},
	}, nil)

	archive, fileName, err := h.Download(testUser, "dev")

	require.NoError(t, err)
	assert.Equal(t, "dev-configuration.zip", fileName)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	var names []string
	for _, file := range reader.File {
		names = append(names, file.Name)
	}
	assert.ElementsMatch(t, names, []string{
		"dev-server.xml", "dev-client.xml", "ConfigurationFactory.java", "Dockerfile",
	})
}
