package main

import (
	"log"
	"os"

	"github.com/chenBenjamin97/surf-coach/pkg/api"
	"github.com/chenBenjamin97/surf-coach/pkg/store"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/chenBenjamin97/surf-coach/pkg/video"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const restartedMessage = "Processing was interrupted by a server restart. Please upload the video again."

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	//.env is optional, real environment variables win over it
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error: Could not read .env file, got '%v'", err)
	}

	utils.SetDefaults()
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error: Could not read config file, got '%v'", err)
	}

	//create missing directories from config file, root first
	for _, dir := range []string{viper.GetString("directory.root"), viper.GetString("directory.jobs")} {
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0766); err != nil {
					log.Printf("Error Creating '%s' directory, got '%v'", dir, err)
				}
			}
		}
	}

	if viper.GetString("analyzer.command") == "" || viper.GetString("database.path") == "" || viper.GetString("frontend.static-files-path") == "" {
		log.Fatalf("Error: Missing critical configurations")
	}

	jobs, err := store.Open(viper.GetString("database.path"), viper.GetString("directory.jobs"))
	if err != nil {
		log.Fatalf("Error: Could not open jobs store, got '%v'", err)
	}
	defer jobs.Close()

	if n, err := jobs.FailUnfinished(restartedMessage); err != nil {
		log.Printf("Error: Could not fail unfinished jobs, got '%v'", err)
	} else if n > 0 {
		log.Printf("Marked %d unfinished jobs as failed", n)
	}

	if orphans, err := jobs.OrphanDirs(); err != nil {
		log.Printf("Error: Could not list jobs directory, got '%v'", err)
	} else if len(orphans) > 0 {
		log.Printf("Found %d job directories without a job: %v", len(orphans), orphans)
	}

	r := api.SetRouter(jobs, video.NewAnalyzer(jobs))
	if err := r.Run(":" + viper.GetString("http.port")); err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}
}
