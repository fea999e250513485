// ctxlogdemo exercises the facade interactively: it loads preferences, emits
// tagged and untagged messages across all levels and shows how black-list /
// white-list switches change what reaches the console.
package main

import (
	"fmt"
	"os"

	"github.com/ostomachion/ctxlog"
	flag "github.com/spf13/pflag"
)

// Demo context space. The library fixes no enumeration, these ids exist only
// in this binary.
const (
	ctxNetworking ctxlog.LogContext = 1
	ctxAuth       ctxlog.LogContext = 2
	ctxStorage    ctxlog.LogContext = 3
)

func main() {
	configPath := flag.String("config", "", "path to a YAML preferences file")
	levelName := flag.String("level", "", "threshold override (VERBOSE, DEBUG, INFO, WARNING, ERROR)")
	persist := flag.Bool("persist", false, "persist messages to a rotating log file")
	focus := flag.Int("focus", -1, "show only messages tagged with this context id")
	flag.Parse()

	log := ctxlog.Init(ctxlog.NewConsoleSink(os.Stderr))

	prefs, err := ctxlog.LoadPreferences(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "preferences:", err)
		os.Exit(1)
	}
	prefs.Apply(log)
	if *levelName != "" {
		log.SetMinLevel(ctxlog.ParseLevel(*levelName))
	}
	if *persist {
		log.SetPersistToFile(true)
	}
	if *focus >= 0 {
		log.Filter().FilterToSingleContext(ctxlog.LogContext(*focus))
	}

	log.Start(-1)

	log.Info("Demo", "starting up")
	log.VerboseC(ctxNetworking, "Dialer", "opening connection")
	log.DebugC(ctxAuth, "Session", "token refresh scheduled")
	log.WarningC(ctxStorage, "Cache", "eviction pressure rising")

	log.Filter().AddToBlacklist(ctxNetworking)
	log.InfoC(ctxNetworking, "Dialer", "black-listed, skipped on the console")
	log.InfoC(ctxStorage, "Cache", "other contexts still visible")
	log.Warning("Demo", "untagged messages always pass")

	log.Filter().Reset()
	log.ErrorC(ctxNetworking, "Dialer", "visible again after reset")

	log.StopAndWait()

	if path, ok := log.CurrentLogFilePath(); ok {
		fmt.Println("persisted to:", path)
	}
}
