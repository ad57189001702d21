//go:build unix

package worker

import (
	"os"
	"os/signal"
	"syscall"
	"time"
)

// abort завершает процесс по SIGABRT, как std::terminate в OpenCV
func abort() {
	signal.Reset(syscall.SIGABRT)
	_ = syscall.Kill(os.Getpid(), syscall.SIGABRT)
	time.Sleep(time.Minute)
}
