package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ayadlabs/propchat/config"
	"github.com/ayadlabs/propchat/internal/corpus"
	"github.com/ayadlabs/propchat/internal/docstore"
	"github.com/ayadlabs/propchat/internal/index"
	"github.com/ayadlabs/propchat/internal/index/memory"
	"github.com/ayadlabs/propchat/internal/index/qdrant"
	"github.com/ayadlabs/propchat/provider"
	"github.com/ayadlabs/propchat/session"
	"github.com/ayadlabs/propchat/session/inmemory"
	sessredis "github.com/ayadlabs/propchat/session/redis"
)

func buildIndexes(cfg *config.Config) (properties, faqs index.VectorIndex, err error) {
	switch cfg.Index.Type {
	case "memory":
		return memory.New(), memory.New(), nil
	case "qdrant":
		q := cfg.Index.Qdrant
		properties, err = qdrant.New(qdrant.Config{
			URL:        q.URL,
			APIKey:     q.APIKey,
			Collection: q.PropertyCollection,
			Dimension:  q.Dimension,
			Timeout:    q.Timeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("property index: %w", err)
		}
		faqs, err = qdrant.New(qdrant.Config{
			URL:        q.URL,
			APIKey:     q.APIKey,
			Collection: q.FAQCollection,
			Dimension:  q.Dimension,
			Timeout:    q.Timeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("faq index: %w", err)
		}
		return properties, faqs, nil
	default:
		return nil, nil, fmt.Errorf("unsupported index.type: %s", cfg.Index.Type)
	}
}

func buildStores(cfg *config.Config, llm provider.Provider, logger *log.Logger) (properties, faqs *docstore.Store, err error) {
	propIx, faqIx, err := buildIndexes(cfg)
	if err != nil {
		return nil, nil, err
	}
	return buildStoresWith(llm, propIx, faqIx, logger)
}

func buildStoresWith(llm provider.Provider, propIx, faqIx index.VectorIndex, logger *log.Logger) (properties, faqs *docstore.Store, err error) {
	return docstore.New("properties", llm, propIx, logger),
		docstore.New("faq", llm, faqIx, logger), nil
}

func buildSessions(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch session.StoreType(cfg.Session.Type) {
	case session.InMemoryStore:
		return inmemory.NewStore(), nil
	case session.RedisStore:
		r := cfg.Session.Redis
		client, err := sessredis.Conn(ctx, r.Host, r.Port, r.Password, r.DB, r.Timeout)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return sessredis.NewStore(client), nil
	default:
		return nil, fmt.Errorf("unsupported session.type: %s", cfg.Session.Type)
	}
}

// ingestCorpora loads both corpora and indexes them. Stores that already hold
// documents are left untouched.
func ingestCorpora(ctx context.Context, cfg *config.Config, properties, faqs *docstore.Store) error {
	records, err := corpus.LoadProperties(cfg.Corpus.PropertiesCSV, cfg.Corpus.LocationsCSV, cfg.Corpus.AmenitiesCSV)
	if err != nil {
		return fmt.Errorf("load properties: %w", err)
	}
	if err := properties.Ingest(ctx, corpus.PropertyDocuments(records)); err != nil {
		return fmt.Errorf("ingest properties: %w", err)
	}

	text, err := corpus.LoadFAQText(cfg.Corpus.FAQFiles)
	if err != nil {
		return fmt.Errorf("load faq: %w", err)
	}
	if err := faqs.Ingest(ctx, corpus.FAQChunks(corpus.FAQSourceTag, text)); err != nil {
		return fmt.Errorf("ingest faq: %w", err)
	}
	return nil
}
