package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/simophin/cpxy/common/log"
	"github.com/simophin/cpxy/common/setting/conf"
	"github.com/simophin/cpxy/common/setting/loader"
)

func main() {
	confPath := flag.String("conf", "config.json", "path to the JSON configuration")
	flag.Parse()

	if err := conf.Loads(*confPath); err != nil {
		log.Errorf("failed to load configuration: %v", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	loader.CloseAll()
	_ = log.Close()
}
