// adxl362-host receives accelerometer sample frames from a board and prints
// them as CSV. The board side is expected to run the fifostream example or
// anything else emitting stream frames.
//
// By default it reads from a serial device; -connect reads the same frame
// stream from a TCP endpoint instead. With -listen the raw byte stream is
// also re-served to TCP clients, so several consumers can tap one board.
package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"adxl362/host/serial"
	"adxl362/stream"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	connect = flag.String("connect", "", "Read frames from a TCP address instead of a serial device")
	listen  = flag.String("listen", "", "Also re-serve the raw frame stream on this TCP address")
	mg      = flag.Bool("mg", false, "Print milli-g instead of raw sample codes")
	rangeG  = flag.Int("range", 2, "Measurement range in g (2, 4 or 8), used with -mg")
)

func main() {
	flag.Parse()

	if *rangeG != 2 && *rangeG != 4 && *rangeG != 8 {
		fmt.Fprintf(os.Stderr, "Error: -range must be 2, 4 or 8\n")
		os.Exit(1)
	}

	src, name, err := openSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()
	fmt.Fprintf(os.Stderr, "Reading frames from %s\n", name)

	var input io.Reader = src
	if *listen != "" {
		relay, err := newRelay(*listen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Re-serving raw frames on %s\n", *listen)
		input = io.TeeReader(src, relay)
	}

	dec := stream.NewDecoder(input)
	header := false
	index := 0
	for {
		frame, err := dec.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read frame: %v\n", err)
			os.Exit(1)
		}

		if !header {
			if frame.StoreTemp {
				fmt.Println("seq,index,x,y,z,temp_c")
			} else {
				fmt.Println("seq,index,x,y,z")
			}
			header = true
		}

		for _, s := range frame.Samples() {
			if frame.StoreTemp {
				fmt.Printf("%d,%d,%s,%s,%s,%.2f\n",
					frame.Seq, index, format(s.X), format(s.Y), format(s.Z),
					float64(s.T)/16)
			} else {
				fmt.Printf("%d,%d,%s,%s,%s\n",
					frame.Seq, index, format(s.X), format(s.Y), format(s.Z))
			}
			index++
		}
	}
}

// format renders one axis code, as raw counts or milli-g. Sensitivity is
// 1 mg/LSB at the 2 g range and scales with the range.
func format(code int16) string {
	if !*mg {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("%.1f", float64(code)*float64(*rangeG)/2)
}

func openSource() (io.ReadCloser, string, error) {
	if *connect != "" {
		conn, err := net.Dial("tcp", *connect)
		if err != nil {
			return nil, "", fmt.Errorf("connect %s: %w", *connect, err)
		}
		return conn, *connect, nil
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, "", err
	}
	return port, *device, nil
}

// relay copies every byte written to it out to all connected TCP clients.
type relay struct {
	mu    sync.Mutex
	conns []net.Conn
}

func newRelay(addr string) (*relay, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	r := &relay{}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			r.mu.Lock()
			r.conns = append(r.conns, conn)
			r.mu.Unlock()
		}
	}()
	return r, nil
}

// Write never fails: clients that stop reading are dropped so a stalled
// consumer cannot block the decode loop.
func (r *relay) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alive := r.conns[:0]
	for _, conn := range r.conns {
		if _, err := conn.Write(p); err != nil {
			conn.Close()
			continue
		}
		alive = append(alive, conn)
	}
	r.conns = alive
	return len(p), nil
}
