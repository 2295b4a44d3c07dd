// Package publish turns a book source tree into a Jekyll-ready output tree.
//
// A publish run is a fixed sequence of stages (prepare_output, copy_assets,
// copy_generator_config, copy_index, copy_content, copy_navigation). The
// first error aborts the run; there is no retry and no rollback. Every run
// produces a BuildReport, and observers receive stage and build callbacks for
// logging, metrics and progress display.
package publish
