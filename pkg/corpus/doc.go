// Package corpus acquires the raw text a trigram model is trained on: it
// downloads books from Project Gutenberg, strips their license boilerplate,
// reads local text and PDF files, and caches downloaded books in SQLite.
package corpus
