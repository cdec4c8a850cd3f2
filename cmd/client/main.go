package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/chenBenjamin97/surf-coach/pkg/client"
	"github.com/chenBenjamin97/surf-coach/pkg/models"
	"github.com/chenBenjamin97/surf-coach/pkg/overlay"
	"github.com/chenBenjamin97/surf-coach/pkg/report"
	"github.com/chenBenjamin97/surf-coach/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error: Could not read .env file, got '%v'", err)
	}
	utils.SetDefaults()
	viper.SetDefault("server.url", "http://localhost:8000")

	serverURL := flag.String("server", viper.GetString("server.url"), "api base url (env SURF_SERVER_URL)")
	videoPath := flag.String("video", "", "video to upload (.mp4 or .mov, up to 500MB)")
	jobID := flag.String("job", "", "existing job id, instead of uploading a video")
	interval := flag.Duration("interval", time.Duration(viper.GetInt("poll.interval"))*time.Millisecond, "status polling interval")
	frameAt := flag.Float64("frame", -1, "save the overlay drawn at this playback time (seconds) as a PNG")
	frameOut := flag.String("out", "frame.png", "output path of -frame")
	flag.Parse()

	if *videoPath == "" && *jobID == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(*serverURL, nil)

	id := *jobID
	if id == "" {
		var err error
		if id, err = c.Upload(ctx, *videoPath); err != nil {
			log.Fatalf("Error: Upload failed, got '%v'", err)
		}
		fmt.Printf("Uploaded '%s', job %s\n", *videoPath, id)
	}

	poller := c.Poller(id)
	poller.Interval = *interval
	bar := report.NewProgressBar(os.Stdout)
	poller.OnStatus = bar.Update
	poller.OnError = func(err error) { log.Printf("Error: Could not fetch job status, got '%v'", err) }

	status, err := poller.Run(ctx)
	bar.Finish()
	if err != nil {
		log.Fatalf("Error: Polling stopped, got '%v'", err)
	}
	if status.Status == models.JobFailed {
		fmt.Println(report.ProgressLine(status))
		os.Exit(1)
	}

	results, err := c.Results(ctx, id)
	if err != nil {
		log.Fatalf("Error: Could not fetch results, got '%v'", err)
	}

	fmt.Println()
	report.WriteMetrics(os.Stdout, results.Metrics)
	fmt.Println()
	printEvents(results.Events)
	fmt.Println()
	report.WriteTips(os.Stdout, results.Tips)

	if *frameAt >= 0 {
		png, err := c.Frame(ctx, id, *frameAt)
		if err != nil {
			log.Fatalf("Error: Could not fetch frame, got '%v'", err)
		}
		if err := ioutil.WriteFile(*frameOut, png, 0644); err != nil {
			log.Fatalf("Error: Could not write '%s', got '%v'", *frameOut, err)
		}
		fmt.Printf("\nOverlay at %.2fs saved to '%s'\n", *frameAt, *frameOut)
	}
}

func printEvents(events []models.Event) {
	fmt.Println("Events")
	if len(events) == 0 {
		fmt.Println("  No events detected")
		return
	}

	for _, e := range events {
		fmt.Printf("  %s (confidence %.0f%%)\n", overlay.EventLabel(e), e.Confidence*100)
	}
}
