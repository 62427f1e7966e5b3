// Package contactx provides a small utility that turns pasted email text
// (headers, signatures) into a structured contact list and renders that list
// in several copy-ready formats.
//
// Extraction itself is delegated to an external generative-AI service; this
// package contains the domain types, interfaces and pure formatting logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., gemini/,
// sqlite/, redis/, clipboard/).
package contactx
