// Package processor provides result post-processing strategies for the
// connection façade.
//
// A Processor reshapes raw result rows after execution and extracts
// generated keys from insert results. The bundled Default processor is
// an identity transform; dialects or callers with special needs supply
// their own implementation.
package processor
