package handler

import "github.com/gridpoint/console/internal/generator"

type ConnectionRequest struct {
	Host     string `json:"host" binding:"required"`
	Port     int    `json:"port" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

type SchemasRequest struct {
	Connection ConnectionRequest `json:"connection" binding:"required"`
}

type SchemasResponse struct {
	Schemas []string `json:"schemas"`
}

type TablesRequest struct {
	Connection ConnectionRequest `json:"connection" binding:"required"`
	Schema     string            `json:"schema" binding:"required"`
}

type ColumnInfo struct {
	Name       string `json:"name"`
	DataType   string `json:"data_type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

type IndexColumn struct {
	Name       string `json:"name"`
	Descending bool   `json:"descending"`
}

type IndexInfo struct {
	Name    string        `json:"name"`
	Unique  bool          `json:"unique"`
	Columns []IndexColumn `json:"columns"`
}

type TableInfo struct {
	Schema  string       `json:"schema"`
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
	Indexes []IndexInfo  `json:"indexes"`
}

type TablesResponse struct {
	Tables []TableInfo `json:"tables"`
}

type ProposeRequest struct {
	Connection ConnectionRequest `json:"connection" binding:"required"`
	Schema     string            `json:"schema" binding:"required"`
	Tables     []string          `json:"tables"`
	// Package qualifies proposed key and value classes, "model" when empty.
	Package string `json:"package"`
}

type ProposeResponse struct {
	Metadata []generator.CacheTypeMetadata `json:"metadata"`
}
