package generator

// section groups the props appended by fill and asks the backend for one
// blank line before the first of them. The very first property of a bean
// never opens a section, so no blank line trails the declaration.
func section(b *Bean, fill func() error) error {
	start := len(b.Props)
	if err := fill(); err != nil {
		return err
	}
	if len(b.Props) > start && start > 0 {
		b.Props[start].NewSection = true
	}
	return nil
}

// buildClusterTree walks one cluster configuration and produces the neutral
// bean tree every backend renders from. Validation of closed kinds happens
// here, so an unknown kind fails the generation call for every format.
func buildClusterTree(cluster *ClusterConfig, opts Options) (*Bean, *genContext, error) {
	ctx := newGenContext()

	cfg := newBean(clsIgniteConfiguration)
	cfg.ID = "cfg"

	if opts.ClientMode {
		cfg.boolValue("clientMode", true)
	}

	discovery, err := buildDiscoveryBean(&cluster.Discovery)
	if err != nil {
		return nil, nil, err
	}
	err = section(cfg, func() error {
		cfg.add(Prop{Name: "discoverySpi", Kind: propBean, Bean: discovery})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(cluster.Caches) > 0 {
		beans := make([]*Bean, 0, len(cluster.Caches))
		for i := range cluster.Caches {
			cacheBean, err := buildCacheBean(ctx, &cluster.Caches[i])
			if err != nil {
				return nil, nil, err
			}
			beans = append(beans, cacheBean)
		}
		cfg.add(Prop{Name: "cacheConfiguration", Kind: propBeanList, Beans: beans, NewSection: true})
	}

	err = section(cfg, func() error {
		if a := cluster.AtomicConfiguration; a != nil {
			atomic := newBean(clsAtomicConfiguration)
			atomic.intValue("backups", a.Backups)
			atomic.enumValue("cacheMode", enumCacheMode, a.CacheMode)
			atomic.intValue("atomicSequenceReserveSize", a.AtomicSequenceReserveSize)
			if len(atomic.Props) > 0 {
				cfg.add(Prop{Name: "atomicConfiguration", Kind: propBean, Bean: atomic})
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		cfg.intValue("networkTimeout", cluster.NetworkTimeout)
		cfg.intValue("networkSendRetryDelay", cluster.NetworkSendRetryDelay)
		cfg.intValue("networkSendRetryCount", cluster.NetworkSendRetryCount)
		cfg.intValue("segmentCheckFrequency", cluster.SegmentCheckFrequency)
		cfg.boolValue("waitForSegmentOnStart", cluster.WaitForSegmentOnStart)
		cfg.intValue("discoveryStartupDelay", cluster.DiscoveryStartupDelay)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		cfg.enumValue("deploymentMode", enumDeploymentMode, cluster.DeploymentMode)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		if len(cluster.IncludeEventTypes) > 0 {
			if _, err := expandEventGroups(cluster.IncludeEventTypes); err != nil {
				return err
			}
			cfg.add(Prop{Name: "includeEventTypes", Kind: propEventTypes, Values: cluster.IncludeEventTypes})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		if m := cluster.Marshaller; m != nil && m.Kind != "" {
			variant, ok := m.variant()
			if !ok {
				return unknownKind(PhaseCluster, "marshaller", m.Kind)
			}
			bean, _, err := buildKindBean(PhaseCluster, "marshaller", m.Kind, marshallers, variant)
			if err != nil {
				return err
			}
			cfg.add(Prop{Name: "marshaller", Kind: propBean, Bean: bean})
		}
		cfg.boolValue("marshalLocalJobs", cluster.MarshalLocalJobs)
		cfg.intValue("marshallerCacheKeepAliveTime", cluster.MarshallerCacheKeepAliveTime)
		cfg.intValue("marshallerCacheThreadPoolSize", cluster.MarshallerCacheThreadPoolSize)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		cfg.intValue("metricsExpireTime", cluster.MetricsExpireTime)
		cfg.intValue("metricsHistorySize", cluster.MetricsHistorySize)
		cfg.intValue("metricsLogFrequency", cluster.MetricsLogFrequency)
		cfg.intValue("metricsUpdateFrequency", cluster.MetricsUpdateFrequency)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		cfg.boolValue("peerClassLoadingEnabled", cluster.PeerClassLoadingEnabled)
		if len(cluster.PeerClassLoadingLocalClassPathExclude) > 0 {
			cfg.add(Prop{
				Name:   "peerClassLoadingLocalClassPathExclude",
				Kind:   propList,
				Values: cluster.PeerClassLoadingLocalClassPathExclude,
			})
		}
		cfg.intValue("peerClassLoadingMissedResourcesCacheSize", cluster.PeerClassLoadingMissedResourcesCacheSize)
		cfg.intValue("peerClassLoadingThreadPoolSize", cluster.PeerClassLoadingThreadPoolSize)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		if s := cluster.SwapSpaceSpi; s != nil && s.Kind != "" {
			variant, ok := s.variant()
			if !ok {
				return unknownKind(PhaseCluster, "swapSpaceSpi", s.Kind)
			}
			bean, _, err := buildKindBean(PhaseCluster, "swapSpaceSpi", s.Kind, swapSpis, variant)
			if err != nil {
				return err
			}
			cfg.add(Prop{Name: "swapSpaceSpi", Kind: propBean, Bean: bean})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		cfg.intValue("clockSyncSamples", cluster.ClockSyncSamples)
		cfg.intValue("clockSyncFrequency", cluster.ClockSyncFrequency)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		cfg.intValue("publicThreadPoolSize", cluster.PublicThreadPoolSize)
		cfg.intValue("systemThreadPoolSize", cluster.SystemThreadPoolSize)
		cfg.intValue("managementThreadPoolSize", cluster.ManagementThreadPoolSize)
		cfg.intValue("igfsThreadPoolSize", cluster.IgfsThreadPoolSize)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		if t := cluster.TransactionConfiguration; t != nil {
			tx := newBean(clsTransactionConfiguration)
			tx.enumValue("defaultTxConcurrency", enumTransactionConcurrency, t.DefaultTxConcurrency)
			tx.enumValue("defaultTxIsolation", enumTransactionIsolation, t.DefaultTxIsolation)
			tx.intValue("defaultTxTimeout", t.DefaultTxTimeout)
			tx.intValue("pessimisticTxLogLinger", t.PessimisticTxLogLinger)
			tx.intValue("pessimisticTxLogSize", t.PessimisticTxLogSize)
			tx.boolValue("txSerializableEnabled", t.TxSerializableEnabled)
			tx.stringValue("txManagerLookupClassName", t.TxManagerLookupClassName)
			if len(tx.Props) > 0 {
				cfg.add(Prop{Name: "transactionConfiguration", Kind: propBean, Bean: tx})
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = section(cfg, func() error {
		cfg.boolValue("cacheSanityCheckEnabled", cluster.CacheSanityCheckEnabled)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return cfg, ctx, nil
}

// buildDiscoveryBean constructs the discovery SPI with its kind-specific IP
// finder. IP finders are always constructed, even with no covered fields,
// because the SPI requires one.
func buildDiscoveryBean(d *Discovery) (*Bean, error) {
	variant, ok := d.variant()
	if !ok {
		return nil, unknownKind(PhaseCluster, "discovery", d.Kind)
	}

	finder, _, err := buildKindBean(PhaseCluster, "discovery", d.Kind, discoveryIPFinders, variant)
	if err != nil {
		return nil, err
	}

	spi := newBean(clsTcpDiscoverySpi)
	spi.add(Prop{Name: "ipFinder", Kind: propBean, Bean: finder})
	return spi, nil
}
