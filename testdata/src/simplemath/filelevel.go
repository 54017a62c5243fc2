// simplemath:ignore
package simplemath

func fileLevelIgnored() int {
	a, b := 2, 3
	return a + b
}
