package bignum

import "fmt"

func ExampleAdd() {
	x, _ := Parse("999", DefaultCapacity)
	fmt.Println(Add(x, One()))
	// Output: 1000
}

func ExampleAddChecked() {
	x, _ := Parse("999", 3)
	_, err := AddChecked(x, NewOne(3))
	fmt.Println(err)
	// Output: bignum: capacity exceeded
}
