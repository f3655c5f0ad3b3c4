// Package worker fans bulk lookup inputs out over a bounded set of goroutines.
package worker
