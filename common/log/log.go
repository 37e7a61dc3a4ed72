package log

var (
	defaultLevel  = Info
	defaultPrefix = NewPrefix("cpxy")

	localLogger = NewSimpleLogger(defaultLevel, defaultPrefix)

	Close = localLogger.Close

	Debugf = localLogger.Debugf
	Infof  = localLogger.Infof
	Warnf  = localLogger.Warningf
	Errorf = localLogger.Errorf
)

func RegisterAlternativeLogger(logger Logger) {
	localLogger = logger

	Close = localLogger.Close

	Debugf = localLogger.Debugf
	Infof = localLogger.Infof
	Warnf = localLogger.Warningf
	Errorf = localLogger.Errorf
}
