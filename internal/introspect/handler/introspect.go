package handler

import (
	"fmt"

	"github.com/gridpoint/console/internal/generator"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// systemSchemas are never offered for introspection.
var systemSchemas = map[string]bool{
	"information_schema": true,
	"mysql":              true,
	"performance_schema": true,
	"sys":                true,
}

type IntrospectHandler struct {
	connect func(conn *ConnectionRequest) (*gorm.DB, func(), error)
}

func openConnection(conn *ConnectionRequest) (*gorm.DB, func(), error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/information_schema?parseTime=true",
		conn.Username, conn.Password, conn.Host, conn.Port)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s:%d: %w", conn.Host, conn.Port, err)
	}
	closer := func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing introspection connection")
		}
	}
	return db, closer, nil
}

func (h *IntrospectHandler) ListSchemas(request *SchemasRequest) (*SchemasResponse, error) {
	db, closeConn, err := h.connect(&request.Connection)
	if err != nil {
		return nil, err
	}
	defer closeConn()

	var names []string
	err = db.Raw("SELECT schema_name FROM information_schema.schemata ORDER BY schema_name").
		Scan(&names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	schemas := make([]string, 0, len(names))
	for _, name := range names {
		if !systemSchemas[name] {
			schemas = append(schemas, name)
		}
	}
	return &SchemasResponse{Schemas: schemas}, nil
}

func (h *IntrospectHandler) ListTables(request *TablesRequest) (*TablesResponse, error) {
	db, closeConn, err := h.connect(&request.Connection)
	if err != nil {
		return nil, err
	}
	defer closeConn()

	tables, err := loadTables(db, request.Schema, nil)
	if err != nil {
		return nil, err
	}
	return &TablesResponse{Tables: tables}, nil
}

func (h *IntrospectHandler) Propose(request *ProposeRequest) (*ProposeResponse, error) {
	db, closeConn, err := h.connect(&request.Connection)
	if err != nil {
		return nil, err
	}
	defer closeConn()

	tables, err := loadTables(db, request.Schema, request.Tables)
	if err != nil {
		return nil, err
	}

	pkg := request.Package
	if pkg == "" {
		pkg = "model"
	}
	metadata := make([]generator.CacheTypeMetadata, 0, len(tables))
	for i := range tables {
		metadata = append(metadata, proposeMetadata(&tables[i], pkg))
	}
	return &ProposeResponse{Metadata: metadata}, nil
}

type columnRow struct {
	ColumnName string
	DataType   string
	IsNullable string
	ColumnKey  string
}

type indexRow struct {
	IndexName  string
	NonUnique  int
	ColumnName string
	Collation  string
}

func loadTables(db *gorm.DB, schema string, only []string) ([]TableInfo, error) {
	var names []string
	query := db.Raw(
		"SELECT table_name FROM information_schema.tables WHERE table_schema = ? AND table_type = 'BASE TABLE' ORDER BY table_name",
		schema)
	if err := query.Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("failed to list tables of %q: %w", schema, err)
	}

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		if len(wanted) > 0 && !wanted[name] {
			continue
		}
		table := TableInfo{Schema: schema, Name: name}
		if err := loadColumns(db, &table); err != nil {
			return nil, err
		}
		if err := loadIndexes(db, &table); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func loadColumns(db *gorm.DB, table *TableInfo) error {
	var rows []columnRow
	err := db.Raw(
		"SELECT column_name, data_type, is_nullable, column_key FROM information_schema.columns WHERE table_schema = ? AND table_name = ? ORDER BY ordinal_position",
		table.Schema, table.Name).Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to read columns of %q: %w", table.Name, err)
	}
	for _, row := range rows {
		table.Columns = append(table.Columns, ColumnInfo{
			Name:       row.ColumnName,
			DataType:   row.DataType,
			Nullable:   row.IsNullable == "YES",
			PrimaryKey: row.ColumnKey == "PRI",
		})
	}
	return nil
}

func loadIndexes(db *gorm.DB, table *TableInfo) error {
	var rows []indexRow
	err := db.Raw(
		"SELECT index_name, non_unique, column_name, collation FROM information_schema.statistics WHERE table_schema = ? AND table_name = ? AND index_name <> 'PRIMARY' ORDER BY index_name, seq_in_index",
		table.Schema, table.Name).Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to read indexes of %q: %w", table.Name, err)
	}
	for _, row := range rows {
		column := IndexColumn{Name: row.ColumnName, Descending: row.Collation == "D"}
		if n := len(table.Indexes); n > 0 && table.Indexes[n-1].Name == row.IndexName {
			table.Indexes[n-1].Columns = append(table.Indexes[n-1].Columns, column)
			continue
		}
		table.Indexes = append(table.Indexes, IndexInfo{
			Name:    row.IndexName,
			Unique:  row.NonUnique == 0,
			Columns: []IndexColumn{column},
		})
	}
	return nil
}

// proposeMetadata turns one introspected table into a cache type
// metadata draft. Primary key columns become key fields; a composite
// key proposes a dedicated <Type>Key class, a single-column key reuses
// the column's Java type directly.
func proposeMetadata(table *TableInfo, pkg string) generator.CacheTypeMetadata {
	className := toJavaClassName(table.Name)
	meta := generator.CacheTypeMetadata{
		Name:           className,
		DatabaseSchema: table.Schema,
		DatabaseTable:  table.Name,
		ValueType:      pkg + "." + className,
	}

	javaTypes := make(map[string]string, len(table.Columns))
	var keyColumns []ColumnInfo
	for _, col := range table.Columns {
		t := lookupType(col.DataType)
		javaTypes[col.Name] = t.Java
		field := generator.TypeField{
			DatabaseName: col.Name,
			DatabaseType: t.Constant,
			JavaName:     toJavaFieldName(col.Name),
			JavaType:     t.Java,
		}
		if col.PrimaryKey {
			keyColumns = append(keyColumns, col)
			meta.KeyFields = append(meta.KeyFields, field)
		} else {
			meta.ValueFields = append(meta.ValueFields, field)
		}
		meta.QueryFields = append(meta.QueryFields, generator.QueryField{
			Name:      toJavaFieldName(col.Name),
			ClassName: t.Java,
		})
	}

	switch len(keyColumns) {
	case 0:
	case 1:
		meta.KeyType = lookupType(keyColumns[0].DataType).Java
	default:
		meta.KeyType = pkg + "." + className + "Key"
	}

	for _, idx := range table.Indexes {
		if len(idx.Columns) == 1 {
			col := idx.Columns[0]
			field := generator.QueryField{
				Name:      toJavaFieldName(col.Name),
				ClassName: javaTypes[col.Name],
			}
			if col.Descending {
				meta.DescendingFields = append(meta.DescendingFields, field)
			} else {
				meta.AscendingFields = append(meta.AscendingFields, field)
			}
			continue
		}
		group := generator.FieldGroup{Name: idx.Name}
		for _, col := range idx.Columns {
			group.Fields = append(group.Fields, generator.GroupField{
				Name:       toJavaFieldName(col.Name),
				ClassName:  javaTypes[col.Name],
				Descending: col.Descending,
			})
		}
		meta.Groups = append(meta.Groups, group)
	}
	return meta
}
