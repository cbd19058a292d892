// Command fileaccess exposes the file-access library on the command line.
//
// Relative paths are resolved against the project root, found once at
// startup from FILES_ROOT, --root, or the nearest ancestor of the working
// directory holding FILES_ROOT_MARKER (go.mod by default).
//
// Usage:
//
//	fileaccess csv read data/users.csv --limit 20
//	fileaccess csv describe data/users.csv
//	printf '1,2\n3,4\n' | fileaccess csv write out.csv --header a,b --chunks 2
//	fileaccess json get conf.yaml server.port
//	fileaccess json set conf.json 'users.[id=2].active' true
//	fileaccess walk src --flat
//	fileaccess glob . '**/*.csv'
//	fileaccess rm build tmp --ignore-errors
//
// Configuration comes from the environment and an optional .env file. Set
// --metrics-file to dump Prometheus counters for the run in text format.
package main
