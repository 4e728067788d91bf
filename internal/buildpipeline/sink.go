package buildpipeline

// SinkFunc adapts a plain function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) {
	if f != nil {
		f(ev)
	}
}

// ChannelSink forwards events into a channel; a nil channel drops them.
// Sends block, so the reader must drain Ch until the pipeline returns.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}
