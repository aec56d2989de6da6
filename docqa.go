// Package docqa provides a local, CLI-based document question answering tool.
// It loads documents from files, folders or remote pages, indexes their
// paragraphs as vector embeddings for semantic search, and answers
// extraction requests and natural language questions over them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, trafilatura/).
package docqa
