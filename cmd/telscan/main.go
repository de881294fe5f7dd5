// Package main provides the entry point for the telscan CLI.
//
// telscan audits the tel: links of a web page against the phone numbers
// the page is supposed to show, and writes the result to a spreadsheet.
//
// Usage:
//
//	telscan scan
//	telscan scan -r 03-1234-5678 https://www.example.co.jp/contact
//
// See --help for all available options.
package main

func main() {
	Execute()
}
