package generator

// buildCacheBean walks one cache configuration into its bean subtree.
// Shared datasources encountered along the way are registered on ctx so
// the backend emits each one exactly once per generation call.
func buildCacheBean(ctx *genContext, cache *CacheConfig) (*Bean, error) {
	b := newBean(clsCacheConfiguration)
	b.ID = beanName("cache", cache.Name)

	b.stringValue("name", cache.Name)
	b.enumValue("cacheMode", enumCacheMode, cache.Mode)
	b.enumValue("atomicityMode", enumCacheAtomicityMode, cache.AtomicityMode)
	b.intValue("backups", cache.Backups)
	b.intValue("startSize", cache.StartSize)
	b.boolValue("readFromBackup", cache.ReadFromBackup)

	err := section(b, func() error {
		b.enumValue("memoryMode", enumCacheMemoryMode, cache.MemoryMode)
		b.int64Value("offHeapMaxMemory", cache.OffHeapMaxMemory)
		b.boolValue("swapEnabled", cache.SwapEnabled)
		b.boolValue("copyOnRead", cache.CopyOnRead)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		return appendEvictionPolicy(b, "evictionPolicy", cache.EvictionPolicy)
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		if near := cache.NearCache; near != nil {
			nearBean := newBean(clsNearCacheConfiguration)
			nearBean.intValue("nearStartSize", near.NearStartSize)
			if err := appendEvictionPolicy(nearBean, "nearEvictionPolicy", near.EvictionPolicy); err != nil {
				return err
			}
			b.add(Prop{Name: "nearConfiguration", Kind: propBean, Bean: nearBean})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		b.boolValue("sqlEscapeAll", cache.SqlEscapeAll)
		b.intValue("sqlOnheapRowCacheSize", cache.SqlOnheapRowCacheSize)
		b.intValue("longQueryWarningTimeout", cache.LongQueryWarningTimeout)
		if len(cache.IndexedTypes) > 0 {
			classes := make([]string, 0, 2*len(cache.IndexedTypes))
			for _, pair := range cache.IndexedTypes {
				classes = append(classes, pair.KeyClass, pair.ValueClass)
			}
			b.add(Prop{Name: "indexedTypes", Kind: propClassList, Values: classes})
		}
		if len(cache.SqlFunctionClasses) > 0 {
			b.add(Prop{Name: "sqlFunctionClasses", Kind: propClassList, Values: cache.SqlFunctionClasses})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		b.enumValue("rebalanceMode", enumCacheRebalanceMode, cache.RebalanceMode)
		b.intValue("rebalanceThreadPoolSize", cache.RebalanceThreadPoolSize)
		b.intValue("rebalanceBatchSize", cache.RebalanceBatchSize)
		b.intValue("rebalanceOrder", cache.RebalanceOrder)
		b.intValue("rebalanceDelay", cache.RebalanceDelay)
		b.intValue("rebalanceTimeout", cache.RebalanceTimeout)
		b.intValue("rebalanceThrottle", cache.RebalanceThrottle)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		if err := appendStoreFactory(ctx, b, cache.Store); err != nil {
			return err
		}
		b.boolValue("readThrough", cache.ReadThrough)
		b.boolValue("writeThrough", cache.WriteThrough)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		b.boolValue("invalidate", cache.Invalidate)
		b.intValue("defaultLockTimeout", cache.DefaultLockTimeout)
		b.stringValue("transactionManagerLookupClassName", cache.TransactionManagerLookupClassName)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		b.boolValue("writeBehindEnabled", cache.WriteBehindEnabled)
		b.intValue("writeBehindBatchSize", cache.WriteBehindBatchSize)
		b.intValue("writeBehindFlushSize", cache.WriteBehindFlushSize)
		b.intValue("writeBehindFlushFrequency", cache.WriteBehindFlushFrequency)
		b.intValue("writeBehindFlushThreadCount", cache.WriteBehindFlushThreadCount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		b.boolValue("statisticsEnabled", cache.StatisticsEnabled)
		b.boolValue("managementEnabled", cache.ManagementEnabled)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		b.intValue("maxConcurrentAsyncOperations", cache.MaxConcurrentAsyncOperations)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = section(b, func() error {
		metas := dedupMetadata(cache.QueryMetadata, cache.StoreMetadata)
		if len(metas) == 0 {
			return nil
		}
		beans := make([]*Bean, 0, len(metas))
		for _, meta := range metas {
			beans = append(beans, ctx.registerMetadata(meta))
		}
		b.add(Prop{Name: "typeMetadata", Kind: propBeanList, Beans: beans})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

func appendEvictionPolicy(b *Bean, prop string, p *EvictionPolicy) error {
	if p == nil || p.Kind == "" {
		return nil
	}
	variant, ok := p.variant()
	if !ok {
		return unknownKind(PhaseCache, prop, p.Kind)
	}
	bean, hasFields, err := buildKindBean(PhaseCache, prop, p.Kind, evictionPolicies, variant)
	if err != nil {
		return err
	}
	if !hasFields {
		return nil
	}
	b.add(Prop{Name: prop, Kind: propBean, Bean: bean})
	return nil
}

// appendStoreFactory attaches the cache-store factory and, for JDBC POJO
// stores with a dialect, registers the shared datasource in the
// de-duplication registry so it is emitted once across the cluster.
func appendStoreFactory(ctx *genContext, b *Bean, store *StoreFactory) error {
	if store == nil || store.Kind == "" {
		return nil
	}
	variant, ok := store.variant()
	if !ok {
		return unknownKind(PhaseCache, "store", store.Kind)
	}
	bean, _, err := buildKindBean(PhaseCache, "store", store.Kind, storeFactories, variant)
	if err != nil {
		return err
	}
	if pojo := store.JdbcPojo; store.Kind == StoreJdbcPojo && pojo != nil &&
		pojo.Dialect != "" && pojo.DataSourceBean != "" {
		ctx.registerDataSource(pojo.DataSourceBean, pojo.Dialect)
	}
	b.add(Prop{Name: "cacheStoreFactory", Kind: propBean, Bean: bean})
	return nil
}

// dedupMetadata unions the query and store metadata lists, keeping the
// first record seen for each name.
func dedupMetadata(lists ...[]CacheTypeMetadata) []CacheTypeMetadata {
	var out []CacheTypeMetadata
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, meta := range list {
			if seen[meta.Name] {
				continue
			}
			seen[meta.Name] = true
			out = append(out, meta)
		}
	}
	return out
}

func buildTypeMetadataBean(meta CacheTypeMetadata) *Bean {
	b := newBean(clsCacheTypeMetadata)
	b.ID = beanName("typeMeta", meta.Name)

	b.stringValue("databaseSchema", meta.DatabaseSchema)
	b.stringValue("databaseTable", meta.DatabaseTable)
	b.stringValue("keyType", meta.KeyType)
	b.stringValue("valueType", meta.ValueType)

	appendFieldMetadata(b, "keyFields", meta.KeyFields)
	appendFieldMetadata(b, "valueFields", meta.ValueFields)

	appendClassMap(b, "queryFields", meta.QueryFields)
	appendClassMap(b, "ascendingFields", meta.AscendingFields)
	appendClassMap(b, "descendingFields", meta.DescendingFields)

	if len(meta.TextFields) > 0 {
		b.add(Prop{Name: "textFields", Kind: propList, Values: meta.TextFields, NewSection: true})
	}

	if len(meta.Groups) > 0 {
		b.add(Prop{Name: "groups", Kind: propGroups, Groups: meta.Groups, NewSection: true})
	}

	return b
}

// appendFieldMetadata renders one column-to-field list as field-metadata
// beans built through the four-argument constructor.
func appendFieldMetadata(b *Bean, name string, fields []TypeField) {
	if len(fields) == 0 {
		return
	}
	beans := make([]*Bean, 0, len(fields))
	for _, f := range fields {
		beans = append(beans, &Bean{
			Class: clsCacheTypeFieldMetadata,
			CtorArgs: []CtorArg{
				{Kind: ctorString, Value: f.DatabaseName},
				{Kind: ctorSQLType, Value: f.DatabaseType},
				{Kind: ctorString, Value: f.JavaName},
				{Kind: ctorClass, Value: f.JavaType},
			},
		})
	}
	b.add(Prop{Name: name, Kind: propBeanList, Beans: beans, NewSection: true})
}

func appendClassMap(b *Bean, name string, fields []QueryField) {
	if len(fields) == 0 {
		return
	}
	pairs := make([]Pair, 0, len(fields))
	for _, f := range fields {
		pairs = append(pairs, Pair{Key: f.Name, Value: f.ClassName})
	}
	b.add(Prop{Name: name, Kind: propClassMap, Pairs: pairs, NewSection: true})
}
