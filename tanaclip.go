// Package tanaclip clips web pages into Tana. It extracts the readable
// article region and page metadata from a page snapshot, splits long text
// into bounded chunks, and formats the result as Tana Paste text or a
// Tana Input API node tree.
//
// This package contains domain types, interfaces and pure text helpers
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, readability/).
package tanaclip
