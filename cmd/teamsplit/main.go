package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/s-min-sys/teamsplit/internal/config"
	"github.com/s-min-sys/teamsplit/internal/kvstore"
	"github.com/s-min-sys/teamsplit/internal/server"
	"github.com/s-min-sys/teamsplit/internal/storage"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libconfig"
	"github.com/sgostarter/liblogrus"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

func main() {
	var configFile string

	var export bool

	flag.StringVar(&configFile, "config", "config.yaml", "config file")
	flag.BoolVar(&export, "export", false, "print every group and its players as yaml, then exit")
	flag.Parse()

	logger := l.NewWrapper(liblogrus.NewLogrusEx(logrus.New()))
	logger.GetLogger().SetLevel(l.LevelDebug)

	cfg := config.Config{
		Listen: ":8080",
		KVStore: kvstore.Config{
			Engine:   kvstore.EngineFile,
			DataRoot: "data",
		},
	}

	_, _ = libconfig.Load(configFile, &cfg)

	if err := config.ApplyEnv(&cfg, ".env"); err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("parse env failed")
	}

	d, _ := yaml.Marshal(cfg)
	logger.Debug(string(d))

	if export {
		if err := exportGroups(&cfg, logger); err != nil {
			logger.WithFields(l.ErrorField(err)).Fatal("export failed")
		}

		return
	}

	s := server.NewServer(context.Background(), nil, &cfg, logger)
	if s == nil {
		logger.Fatal("start server failed")
	}

	s.Wait()
}

func exportGroups(cfg *config.Config, logger l.Wrapper) error {
	kv, err := kvstore.New(&cfg.KVStore, cfg.Debug, logger)
	if err != nil {
		return err
	}

	if closer, ok := kv.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	groups, err := storage.NewStorage(kv, logger).GetAllGroupPlayers()
	if err != nil {
		return err
	}

	d, err := yaml.Marshal(groups)
	if err != nil {
		return err
	}

	fmt.Print(string(d))

	return nil
}
