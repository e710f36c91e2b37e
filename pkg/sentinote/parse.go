package sentinote

import (
	"flag"
	"fmt"
)

// Parse parses command line arguments and returns the command to execute
// and the application configuration. Flags cover server and classifier
// settings; connection details come from the environment so secrets stay
// out of process listings.
func Parse(args []string) (Command, *Config, error) {
	flagSet := flag.NewFlagSet("sentinote", flag.ContinueOnError)

	var (
		backend    = flagSet.String("backend", BackendDynamoDB, "Storage backend: dynamodb, surreal or memory")
		classifier = flagSet.String("classifier", ClassifierComprehend, "Sentiment classifier: comprehend or static")
		port       = flagSet.String("port", "8080", "Server port")
		logLevel   = flagSet.String("log-level", "info", "Minimum log level")
		logConsole = flagSet.Bool("log-console", false, "Human-readable log output instead of JSON")
	)

	if err := flagSet.Parse(args); err != nil {
		return nil, nil, err
	}

	remainingArgs := flagSet.Args()
	if len(remainingArgs) == 0 {
		return nil, nil, fmt.Errorf(`subcommand required

Usage: sentinote [flags] <command>

Commands:
  run       Start the sentinote server
  migrate   Provision the storage backend

Examples:
  sentinote run                                  # DynamoDB + Comprehend
  sentinote -backend memory -classifier static run
  sentinote -backend surreal run
  sentinote migrate                              # Create the DynamoDB table
  sentinote -port=8090 -log-console run`)
	}

	var cmd Command
	switch remainingArgs[0] {
	case "run":
		cmd = &RunCommand{}
	case "migrate":
		cmd = &MigrateCommand{}
	default:
		return nil, nil, fmt.Errorf("unknown command: %s\n\nValid commands: run, migrate", remainingArgs[0])
	}

	switch *backend {
	case BackendDynamoDB, BackendSurreal, BackendMemory:
	default:
		return nil, nil, fmt.Errorf("invalid backend: %s (must be dynamodb, surreal or memory)", *backend)
	}
	switch *classifier {
	case ClassifierComprehend, ClassifierStatic:
	default:
		return nil, nil, fmt.Errorf("invalid classifier: %s (must be comprehend or static)", *classifier)
	}

	config := &Config{
		Backend:    *backend,
		Classifier: *classifier,
		ServerPort: *port,
		LogLevel:   *logLevel,
		LogConsole: *logConsole,
	}

	config.TableName = getEnv("SENTINOTE_TABLE", "sentinote-notes")
	config.AWSRegion = getEnv("AWS_REGION", "us-east-1")
	config.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", "")
	config.SurrealURL = getEnv("SURREALDB_URL", "ws://localhost:8000/rpc")
	config.SurrealNS = getEnv("SURREALDB_NS", "sentinote")
	config.SurrealDB = getEnv("SURREALDB_DB", "sentinote")
	config.SurrealUser = getEnv("SURREALDB_USER", "root")
	config.SurrealPass = getEnv("SURREALDB_PASS", "root")

	return cmd, config, nil
}
