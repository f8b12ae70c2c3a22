package system

import "time"

func sysUsleep(usec uint) {
	time.Sleep(time.Duration(usec) * time.Microsecond)
}
