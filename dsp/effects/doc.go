// Package effects implements the offline effect kernels of the editor:
// Schroeder reverb, feedback echo, multi-voice chorus, 3-band parametric EQ
// and a dynamic range compressor.
//
// Effects operate on whole buffers with fresh state per call and never
// mutate their input. Parameter validation happens at the Processor
// boundary; kernels assume validated parameters.
package effects
