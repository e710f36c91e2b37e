package sentinote

// Command represents a discrete application operation. Each implementation
// carries the options for its operation; shared configuration lives in
// [Config]. Commands are produced by [Parse] and dispatched by [Main].
type Command interface {
	// Name returns the command identifier used for routing.
	Name() string
}

// RunCommand starts the HTTP server. All configuration comes from
// App.Config; run-specific options can be added here as needed.
type RunCommand struct{}

func (c *RunCommand) Name() string {
	return "run"
}

// MigrateCommand provisions the storage backend: for DynamoDB it creates
// the note table and its text index if they do not exist. Safe to run
// repeatedly.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}
