package canvas_test

import (
	"fmt"

	"github.com/matzehuels/footlights/pkg/canvas"
)

func ExampleCanvas_Layout() {
	c := canvas.New()
	c.Push(canvas.NewPureBackground("#f0f0f0"))
	c.Push(canvas.NewImage("screenshot.png", canvas.Size{Width: 200, Height: 100}))

	size, placements := c.Layout()
	fmt.Println("document:", size)
	for _, p := range placements {
		fmt.Println(p.Layer.Kind(), p.Size, p.Position)
	}
	// Output:
	// document: 400x300
	// background 400x300 (0,0)
	// image 200x100 (100,100)
}

func ExampleCanvas_RenderString() {
	c := canvas.New()
	c.Push(canvas.NewBasicShape(canvas.Rectangle).WithFill("teal"))

	svg, err := c.RenderString()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(svg)
	// Output:
	// <svg xmlns="http://www.w3.org/2000/svg" width="100" height="100"><rect width="100" height="100" x="0" y="0" fill="teal"/></svg>
}

func ExampleSizeOption_UnmarshalText() {
	var o canvas.SizeOption
	if err := o.UnmarshalText([]byte("fit-content(24)")); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(o, o.Resolve(canvas.Size{Width: 10, Height: 10}))
	// Output:
	// fit-content(24) 58x58
}
