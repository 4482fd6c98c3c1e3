package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lectio-cli/lectio/auth"
	"github.com/lectio-cli/lectio/key"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/network"
	"github.com/lectio-cli/lectio/pipeline"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func networkOptions() network.Options {
	return network.Options{
		Retry: network.RetryConfig{
			MaxAttempts: viper.GetInt(key.NetworkRetryAttempts),
			BaseDelay:   time.Duration(viper.GetInt(key.NetworkRetryBaseDelayMs)) * time.Millisecond,
			MaxDelay:    time.Duration(viper.GetInt(key.NetworkRetryMaxDelayMs)) * time.Millisecond,
		},
		HeaderTimeout: time.Duration(viper.GetInt(key.NetworkHeaderTimeoutSeconds)) * time.Second,
		UserAgent:     viper.GetString(key.NetworkUserAgent),
		SpoofTLS:      viper.GetBool(key.NetworkSpoofTLS),
	}
}

// pipelineConfig assembles a run for courseURL. Missing credentials are asked for interactively.
func pipelineConfig(courseURL string) (pipeline.Config, error) {
	username, err := resolveUsername()
	if err != nil {
		return pipeline.Config{}, err
	}

	password, err := resolvePassword(username)
	if err != nil {
		return pipeline.Config{}, err
	}

	return pipeline.Config{
		Username:             username,
		Password:             password,
		LoginURL:             viper.GetString(key.AuthLoginURL),
		NextPage:             viper.GetString(key.AuthNextPage),
		CourseURL:            courseURL,
		DownloadRoot:         viper.GetString(key.DownloadPath),
		LecturePrefix:        viper.GetString(key.DownloadLecturePrefix),
		VideoPattern:         viper.GetString(key.DiscoveryVideoPattern),
		AttachmentExtensions: viper.GetStringSlice(key.DiscoveryAttachmentExtensions),
		ChunkSize:            viper.GetInt(key.DownloadChunkSize),
		MaxPathLength:        viper.GetInt(key.DownloadMaxPathLength),
		TempSuffix:           viper.GetString(key.DownloadTempSuffix),
		Network:              networkOptions(),
	}, nil
}

func resolveUsername() (string, error) {
	if username := viper.GetString(key.AuthUsername); username != "" {
		return username, nil
	}

	var username string
	err := survey.AskOne(&survey.Input{
		Message: "Login or email:",
	}, &username, survey.WithValidator(survey.Required))
	return username, err
}

// EnvPassword holds the account password for non-interactive runs.
const EnvPassword = "LECTIO_PASSWORD"

// resolvePassword reads the environment, then the keyring, and prompts only when neither has it.
func resolvePassword(username string) (string, error) {
	if password, ok := os.LookupEnv(EnvPassword); ok && password != "" {
		return password, nil
	}

	password, err := auth.GetPassword(username)
	switch {
	case err == nil:
		return password, nil
	case !errors.Is(err, keyring.ErrNotFound):
		log.WithFields(log.Fields{"user": username}).WithError(err).Warn("keyring unavailable")
	}

	err = survey.AskOne(&survey.Password{
		Message: fmt.Sprintf("Password for %s:", username),
	}, &password, survey.WithValidator(survey.Required))
	return password, err
}
