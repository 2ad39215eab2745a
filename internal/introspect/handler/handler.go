package handler

import "sync"

// Introspector reverse-engineers cache type metadata from a relational
// database by reading its information_schema.
type Introspector interface {
	ListSchemas(request *SchemasRequest) (*SchemasResponse, error)
	ListTables(request *TablesRequest) (*TablesResponse, error)
	Propose(request *ProposeRequest) (*ProposeResponse, error)
}

var (
	introspectHandler Introspector
	once              sync.Once
)

func InitIntrospector() Introspector {
	if introspectHandler == nil {
		once.Do(func() {
			introspectHandler = &IntrospectHandler{
				connect: openConnection,
			}
		})
	}
	return introspectHandler
}
