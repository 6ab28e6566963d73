package infra

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger プロセス全体で共有するzerologロガー
var Logger zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	Logger = log.Output(cw)
}
