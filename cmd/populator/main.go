package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"carnatic-archive/pkg/audiopath"
	"carnatic-archive/pkg/dataset"
	"carnatic-archive/pkg/db"
	"carnatic-archive/pkg/domain"
	"carnatic-archive/pkg/populate"
	"carnatic-archive/pkg/replication"
)

func main() {
	var (
		in      = flag.String("in", dataset.DefaultRecordsFile, "Input JSON file of extracted raga records")
		summary = flag.String("summary", dataset.DefaultSummaryFile, "Download summary JSON file")
		baseDir = flag.String("dir", audiopath.DefaultBaseDir, "Base directory the downloader wrote audio files into")

		mongoURI   = flag.String("mongo-uri", envOr("MONGO_CONNECTION_STRING", db.DefaultConnectionString), "MongoDB connection string")
		dbName     = flag.String("db", envOr("MONGO_DB_NAME", db.DefaultDatabaseName), "MongoDB database name")
		collection = flag.String("collection", db.DefaultCollectionName, "MongoDB collection for raga documents")

		dryRun = flag.Bool("dry-run", false, "Build documents without writing to the store")
		pgDSN  = flag.String("replicate-pg", "", "Optional Postgres DSN; when set, mirror the collection after populating")

		supabaseURL      = flag.String("replicate-supabase-url", "", "Optional Supabase project URL; with a password, mirror the collection into Supabase")
		supabaseKey      = flag.String("replicate-supabase-key", "", "Supabase API key (optional, enables SDK features)")
		supabasePassword = flag.String("replicate-supabase-password", "", "Supabase database password")
	)
	flag.Parse()

	ctx := context.Background()

	// Without records there is nothing to reconcile; this is fatal.
	records, err := dataset.LoadRecords(*in)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}

	// A missing or malformed summary is not: every download resolves to
	// failed and the run proceeds.
	var downloadSummary *domain.DownloadSummary
	if s, err := dataset.LoadSummary(*summary); err != nil {
		log.Printf("Could not load %s (%v), treating all downloads as failed", *summary, err)
	} else {
		downloadSummary = &s
	}

	// An unreachable store degrades to a dry run instead of aborting:
	// documents are still built and logged so the run is not wasted.
	var store populate.RagaStore
	var mongoClient *db.Client
	if !*dryRun {
		client := db.NewClient(*mongoURI, *dbName, *collection)
		if err := client.Connect(ctx); err != nil {
			log.Printf("Could not connect to database (%v), continuing as dry run", err)
		} else {
			defer client.Close(ctx)
			mongoClient = client
			store = client
		}
	}

	service := populate.NewService(populate.Config{
		BaseDir: *baseDir,
		Store:   store,
	})

	start := time.Now()
	log.Printf("Populating store from %d record(s)", len(records))
	n, err := service.Run(ctx, records, downloadSummary)
	if err != nil {
		log.Fatalf("Populate failed: %v", err)
	}
	log.Printf("Upserted %d document(s). Duration: %s", n, time.Since(start))

	if mongoClient != nil {
		switch {
		case *pgDSN != "":
			pg := db.NewPostgresClient(db.PostgresConfig{DSN: *pgDSN})
			if err := pg.Connect(ctx); err != nil {
				log.Fatalf("Failed to connect to Postgres: %v", err)
			}
			defer pg.Close()
			replicate(ctx, mongoClient, pg)
		case *supabaseURL != "":
			sb := db.NewSupabaseClient(db.SupabaseConfig{
				ProjectURL: *supabaseURL,
				APIKey:     *supabaseKey,
				Password:   *supabasePassword,
			})
			if err := sb.Connect(ctx); err != nil {
				log.Fatalf("Failed to connect to Supabase: %v", err)
			}
			defer sb.Close()
			replicate(ctx, mongoClient, sb)
		}
	}
}

func replicate(ctx context.Context, mongoClient *db.Client, target db.DBProvider) {
	replicator, err := replication.NewReplicator(replication.Config{
		Mongo:    mongoClient,
		Postgres: target,
	})
	if err != nil {
		log.Fatalf("Failed to build replicator: %v", err)
	}
	if err := replicator.ReplicateRagasMongoToPostgres(ctx); err != nil {
		log.Fatalf("Replication failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
