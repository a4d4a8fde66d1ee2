// Package debuglog gates diagnostic output behind the host-controlled
// debug flag word. Flag reads are atomic so the hot paths can check a
// bit without taking a lock.
package debuglog
