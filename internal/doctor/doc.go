// Package doctor checks that the environment can serve a conversation: an
// LLM credential is configured, the package manager is installed and recent
// enough, the dependency manifest exists, and the working directory is
// writable. Output uses the [ OK ]/[MISS]/[WARN]/[FAIL] status markers.
package doctor
