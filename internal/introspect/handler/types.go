package handler

import "strings"

// sqlType pairs the java.sql.Types constant for a column with the Java
// class used when the column is mapped into a domain model field.
type sqlType struct {
	Constant string
	Java     string
}

// mysqlTypes maps information_schema DATA_TYPE values onto JDBC types.
var mysqlTypes = map[string]sqlType{
	"bit":        {"BIT", "Boolean"},
	"bool":       {"BOOLEAN", "Boolean"},
	"boolean":    {"BOOLEAN", "Boolean"},
	"tinyint":    {"TINYINT", "Byte"},
	"smallint":   {"SMALLINT", "Short"},
	"mediumint":  {"INTEGER", "Integer"},
	"int":        {"INTEGER", "Integer"},
	"integer":    {"INTEGER", "Integer"},
	"bigint":     {"BIGINT", "Long"},
	"float":      {"FLOAT", "Float"},
	"real":       {"REAL", "Double"},
	"double":     {"DOUBLE", "Double"},
	"decimal":    {"DECIMAL", "java.math.BigDecimal"},
	"numeric":    {"NUMERIC", "java.math.BigDecimal"},
	"char":       {"CHAR", "String"},
	"varchar":    {"VARCHAR", "String"},
	"tinytext":   {"VARCHAR", "String"},
	"text":       {"VARCHAR", "String"},
	"mediumtext": {"VARCHAR", "String"},
	"longtext":   {"VARCHAR", "String"},
	"enum":       {"VARCHAR", "String"},
	"set":        {"VARCHAR", "String"},
	"date":       {"DATE", "java.sql.Date"},
	"time":       {"TIME", "java.sql.Time"},
	"datetime":   {"TIMESTAMP", "java.sql.Timestamp"},
	"timestamp":  {"TIMESTAMP", "java.sql.Timestamp"},
	"year":       {"DATE", "java.sql.Date"},
	"binary":     {"BINARY", "byte[]"},
	"varbinary":  {"VARBINARY", "byte[]"},
	"tinyblob":   {"BLOB", "byte[]"},
	"blob":       {"BLOB", "byte[]"},
	"mediumblob": {"BLOB", "byte[]"},
	"longblob":   {"BLOB", "byte[]"},
	"json":       {"VARCHAR", "String"},
}

var fallbackType = sqlType{"OTHER", "Object"}

func lookupType(dataType string) sqlType {
	if t, ok := mysqlTypes[strings.ToLower(dataType)]; ok {
		return t
	}
	return fallbackType
}

// toJavaClassName converts a table name to a class name: person_details
// becomes PersonDetails.
func toJavaClassName(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			sb.WriteString(strings.ToUpper(string(r)))
			upper = false
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// toJavaFieldName converts a column name to a field name: first_name
// becomes firstName.
func toJavaFieldName(name string) string {
	cls := toJavaClassName(name)
	if cls == "" {
		return cls
	}
	return strings.ToLower(cls[:1]) + cls[1:]
}
