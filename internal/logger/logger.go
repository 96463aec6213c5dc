package logger

import (
	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init настраивает логгер приложения. pretty включает текстовый формат для
// локальной разработки, иначе пишем JSON.
func Init(level string, pretty bool) {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if pretty {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	Log = l
}

// L возвращает логгер приложения. До Init это стандартный логгер logrus,
// поэтому пакеты могут логировать и в тестах.
func L() *logrus.Logger {
	if Log == nil {
		return logrus.StandardLogger()
	}
	return Log
}

// WithComponent возвращает запись лога с полем component.
func WithComponent(name string) *logrus.Entry {
	return L().WithField("component", name)
}

// ForSession: запись компонента с полями сессии консоли.
func ForSession(component, sessionID, username string) *logrus.Entry {
	return WithComponent(component).WithFields(logrus.Fields{
		"session_id": sessionID,
		"username":   username,
	})
}
