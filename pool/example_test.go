package pool_test

import (
	"fmt"
	"os"

	"github.com/joshuapare/objpool/pool"
)

func Example() {
	p := pool.New(pool.Options{Capacity: 1024})
	if err := p.Init(); err != nil {
		panic(err)
	}
	defer p.Destroy()

	a, _ := p.Insert(600)
	b, _ := p.Insert(300)
	_ = p.Write(b, 0, []byte("hello"))

	p.DropReference(a)

	// 600 more bytes do not fit behind b, so the insert compacts first.
	c, _ := p.Insert(600)
	fmt.Println("handles:", a, b, c)

	data, _ := p.Bytes(b)
	fmt.Println(string(data[:5]))

	st, _ := p.LastCompaction()
	fmt.Println("collected:", st.CollectedBytes)

	_ = p.Dump(os.Stdout)
	// Output:
	// handles: 1 2 3
	// hello
	// collected: 600
	// Current Pool
	//   handle 3  offset 300  size 600 bytes  refs 1  (live)
	//   handle 2  offset 0  size 300 bytes  refs 1  (live)
}

func ExampleView() {
	p := pool.New(pool.Options{Capacity: 1024})
	_ = p.Init()
	defer p.Destroy()

	h, _ := p.Insert(16)
	v, _ := p.Retrieve(h)
	fmt.Println(v.Valid(), v.Len())

	p.Compact()
	_, err := v.Bytes()
	fmt.Println(v.Valid(), err)
	// Output:
	// true 16
	// false pool: view invalidated by compaction
}
