package value_test

import (
	"fmt"
	"math"

	"github.com/matzehuels/shadergraph/pkg/host/memhost"
	"github.com/matzehuels/shadergraph/pkg/value"
)

func ExampleNormalize() {
	fmt.Println(value.Normalize([3]float32{0.5, 0.25, 1}))
	fmt.Println(value.Normalize(uint8(7)))
	fmt.Println(value.Normalize(memhost.Ref{Type: "Image", Name: "wood.png"}))
	fmt.Println(value.Normalize(math.Inf(1)))
	// Output:
	// [0.5 0.25 1]
	// 7
	// <Image: wood.png>
	// <nil>
}
