/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package goid

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync"
)

// ID is a goroutine identity. It is unique among all goroutines alive in the process.
type ID int64

var goroutinePrefix = []byte("goroutine ")

// "goroutine " + up to 20 digits + " [" fits into 64 bytes.
var stackBufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 64)
		return &b
	},
}

// Current returns the ID of the calling goroutine.
// It panics if the runtime stack header has an unexpected format.
func Current() ID {
	bufPtr := stackBufPool.Get().(*[]byte)
	defer stackBufPool.Put(bufPtr)

	buf := *bufPtr
	n := runtime.Stack(buf, false)
	id, err := parse(buf[:n])
	if err != nil {
		panic(err)
	}
	return id
}

// parse extracts the ID from a stack header like "goroutine 42 [running]:".
func parse(header []byte) (ID, error) {
	if !bytes.HasPrefix(header, goroutinePrefix) {
		return 0, fmt.Errorf("goid: unexpected stack header %q", header)
	}
	rest := header[len(goroutinePrefix):]
	end := bytes.IndexByte(rest, ' ')
	if end <= 0 {
		return 0, fmt.Errorf("goid: unexpected stack header %q", header)
	}
	id, err := strconv.ParseInt(string(rest[:end]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("goid: parse goroutine id: %w", err)
	}
	return ID(id), nil
}
