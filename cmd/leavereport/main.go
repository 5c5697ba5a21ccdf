// Package main provides the leavereport command line tool, which evaluates
// premium leave spreadsheets and reports rescheduling urgency.
package main

func main() {
	Execute()
}
