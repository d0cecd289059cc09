// Package logger provides leveled logging for tosk CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with colored level prefixes.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()            // Shown with --verbose or --debug
//	Logger.Debugf()           // Shown only with --debug
//	Logger.Warnf()            // Shown with --verbose or --debug
//	Logger.WarnfAlways()      // Always shown (critical warnings)
//	Logger.WarnfUser()        // Always shown, user-facing, no log prefix
//	Logger.Errorf()           // Always shown
//	Logger.ErrorfAndReturn()  // Always shown, returns the error
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Pushing %d files", count)
//
// Commands create a logger in their PersistentPreRun, after the flags
// are parsed. Nothing in this package terminates the process; commands
// return errors and the entrypoint decides the exit code.
package logger
