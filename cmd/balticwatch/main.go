// Balticwatch collects AIS vessel positions for the Baltic Sea and applies a
// boundary-crossing retention policy to the collected history.
//
// Usage:
//
//	# Run one collection cycle
//	balticwatch collect
//
//	# Apply the retention policy once
//	balticwatch cleanup
//
//	# Preview retention verdicts without deleting
//	balticwatch cleanup --dry-run
//
//	# Export the latest-position snapshot
//	balticwatch export
//
//	# Run as a daemon with scheduled collection and cleanup
//	balticwatch run
//
//	# Show version information
//	balticwatch version
package main

func main() {
	Execute()
}
