// Package values holds the run-time value representation: the Val cell
// that instance fields and operand stacks store, and the Ref/Handle pair
// that ties reference values to the stores that own their objects.
//
// The package sits below heap and exec on purpose. Object stores hand out
// Handles and keep the actual data; a Ref travels freely between stacks,
// fields, and tables without pinning anything.
package values
