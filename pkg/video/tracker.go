package video

import (
	"bufio"
	"bytes"
	"log"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

//RunAnalyzer executes the external analysis command (detection, tracking and event detection of the surfer)
//with "--video <videoPath> --out <outDir>" appended to its arguments. The command must write results.json and
//tracks.json into outDir. This function listens to the command's standard output: "PROGRESS <0..1>" lines are
//passed to onProgress, "ERROR <message>" lines become the returned AnalysisError, anything else is logged.
func RunAnalyzer(command string, args []string, videoPath, outDir string, onProgress func(float64)) error {
	if command == "" {
		return errors.New("RunAnalyzer: no analyzer command configured")
	}

	cmdArgs := append(append(make([]string, 0, len(args)+4), args...), "--video", videoPath, "--out", outDir)
	cmd := exec.Command(command, cmdArgs...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "RunAnalyzer: stdout pipe")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "RunAnalyzer: start '%s'", command)
	}

	var reported *AnalysisError
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := parseAnalyzerLine(scanner.Text())

		switch line.kind {
		case lineProgress:
			if onProgress != nil {
				onProgress(line.progress)
			}
		case lineError:
			if reported == nil { //the first error is the meaningful one
				reported = &AnalysisError{Message: line.message}
			}
		default:
			if line.message != "" {
				log.Printf("RunAnalyzer: %s", line.message)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("RunAnalyzer: Error reading analyzer's output, got '%v'", err)
	}

	waitErr := cmd.Wait()
	if reported != nil {
		return reported
	}

	if waitErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			log.Printf("RunAnalyzer: analyzer's stderr: %s", msg)
		}
		return errors.Wrap(waitErr, "RunAnalyzer: analyzer process failed")
	}

	return nil
}
