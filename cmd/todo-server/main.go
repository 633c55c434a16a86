package main

import (
	"flag"
	"log"

	"github.com/nabeel-hussain/ToDoApp/internal/application"
	appconfig "github.com/nabeel-hussain/ToDoApp/internal/application/config"
	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/config"

	_ "github.com/nabeel-hussain/ToDoApp/internal/api"
	_ "github.com/nabeel-hussain/ToDoApp/internal/registry_ext"
)

var Version = "v0.1.0"

func main() {
	env := flag.String("env", consts.ENV_DEVELOPMENT, "runtime environment: development|production|test")
	cfgPath := flag.String("config", consts.DEFAULT_CONFIG_PATH, "config file path (.yaml, .json or .toml)")
	dotenv := flag.String("dotenv", ".env", "optional dotenv file, ignored when missing")
	flag.Parse()

	if err := appconfig.LoadDotEnv(*dotenv); err != nil {
		log.Fatalf("load dotenv: %v", err)
	}

	app := application.NewApp(*env, *cfgPath, application.WithBizConfig(config.Default()))
	log.Printf("todo-server %s starting (env=%s config=%s)", Version, *env, *cfgPath)
	if err := app.Run(); err != nil {
		log.Fatalf("app exited with error: %v", err)
	}
}
