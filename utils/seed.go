package utils

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

type SeedMode string

const (
	// SeedPID seeds with the id of this process.
	SeedPID SeedMode = "pid"
	// SeedParent seeds with the id of the parent process, so worker
	// processes started by one server agree on runtime ids.
	SeedParent SeedMode = "parent"
	// SeedFixed always uses the configured value.
	SeedFixed SeedMode = "fixed"
)

func ParseSeedMode(s string) (SeedMode, error) {
	switch m := SeedMode(s); m {
	case SeedPID, SeedParent, SeedFixed:
		return m, nil
	case "":
		return SeedPID, nil
	}
	return "", fmt.Errorf("unknown seed mode %q", s)
}

// ProcessSeed returns the seed used to order block tables. If the process
// id can not be found fallback is returned.
func ProcessSeed(mode SeedMode, fallback int64) int64 {
	switch mode {
	case SeedFixed:
		return fallback
	case SeedParent:
		p, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			logrus.Warnf("seed: %s, using %d", err, fallback)
			return fallback
		}
		ppid, err := p.Ppid()
		if err != nil || ppid <= 0 {
			logrus.Warnf("seed: no parent process (%v), using %d", err, fallback)
			return fallback
		}
		logrus.Debugf("seed: using parent process %d", ppid)
		return int64(ppid)
	}
	if pid := os.Getpid(); pid > 0 {
		return int64(pid)
	}
	return fallback
}
