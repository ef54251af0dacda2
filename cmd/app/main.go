package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"live-camera-filters/internal/app"
	"live-camera-filters/internal/capture"
	"live-camera-filters/internal/opencv"
)

const (
	appName     = "Live Camera Filters"
	windowTitle = "Live Camera Filters"
	cameraIndex = 0
)

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"camera":     cameraIndex,
		"debug_mode": *debugMode,
	}).Info("Starting " + appName)

	camera, err := opencv.OpenCamera(cameraIndex, logger)
	if err != nil {
		logger.WithError(err).Fatal("Camera unavailable")
	}
	defer camera.Close()

	window := opencv.NewWindow(windowTitle, logger)
	manager := capture.NewManager(
		camera,
		opencv.NewImageFiles(logger),
		opencv.NewVideoFiles(logger),
		window,
		true, // mirror the preview so the display behaves like a mirror
		logger,
	)

	application := app.New(window, manager, nil, logger)
	if err := application.Run(); err != nil {
		logger.WithError(err).Fatal("Application loop failed")
	}

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
