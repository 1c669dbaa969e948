/*
Package algorithms implements the step generators of the visualizer.

Every generator is a pure function from a domain.Input to a lazy, finite iter.Seq of
domain.Step snapshots. Generators copy their input before returning, never keep global
state and never use randomness, so ranging over the same sequence twice (or calling the
generator again with the same input) reproduces the identical steps.

Structural problems (missing start node, out-of-range bucket values, unsorted binary
search input) are reported as errors before the sequence exists. Edges that reference
unknown nodes are skipped by every graph generator and listed in the first step's
Warnings.

# Usage

	seq, err := algorithms.BubbleSort(domain.Input{Array: []float64{5, 3, 8, 1}})
	if err != nil {
		return err
	}
	for step := range seq {
		fmt.Println(step.Description)
	}
*/
package algorithms
