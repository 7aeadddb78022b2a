package dice_test

import (
	"fmt"
	"math/rand"

	"github.com/zephyrtronium/dice"
)

func ExampleTree() {
	tree := dice.NewTree(dice.WithRand(rand.New(rand.NewSource(1))))
	fmt.Print(tree.String(), "\n")
	tree.SetExpression("42")
	fmt.Print(tree.String())
	fmt.Println(tree.ParseExpression())
	tree.SetExpression("dhgdshd")
	fmt.Println(tree.String(), tree.ParseExpression())
	// Output:
	// expression not yet set
	// head->(42)
	// 42
	// invalid expression 0
}

func ExampleTree_String() {
	tree := dice.NewTree()
	tree.SetExpression("4d6h3 + 2")
	fmt.Print(tree.String())
	// Output:
	// head->(+)
	//     |->(dh3)
	//     |   |->(4)
	//     |   |->(6)
	//     |->(2)
}

func ExampleExpr_String() {
	e, err := dice.ParseString("(2d6+4)d6+5")
	if err != nil {
		panic(err)
	}
	fmt.Println(e)
	// Output: ((((2d6) + 4)d6) + 5)
}

func ExampleExpr_Bounds() {
	e, err := dice.ParseString("2d(1d6 + 2) / 2")
	if err != nil {
		panic(err)
	}
	fmt.Println(e.Bounds())
	// Output: 1 8 true
}

func ExampleRoller_Rolls() {
	e, err := dice.ParseString("3d1 + 2d1h1")
	if err != nil {
		panic(err)
	}
	r := dice.NewRoller(nil)
	fmt.Println(r.Eval(e))
	for _, roll := range r.Rolls() {
		fmt.Printf("d%d%v: %v kept %v = %d\n", roll.Sides, roll.Keep, roll.Results, roll.Kept, roll.Total)
	}
	// Output:
	// 4 <nil>
	// d1: [1 1 1] kept [1 1 1] = 3
	// d1h1: [1 1] kept [1] = 1
}

func ExampleParse_error() {
	_, err := dice.ParseString("2d6 + (1")
	fmt.Println(err)
	var ierr dice.InputError
	if e, ok := err.(dice.InputError); ok {
		ierr = e
	}
	fmt.Println(ierr.Pos())
	// Output:
	// 9: open bracket ( with no close bracket
	// 9
}
