package overlay

//MediaSource is the host media surface driving a renderer: it notifies playback time
//changes and the moment the native resolution becomes known. Every subscription returns
//a cancel func that has to be called on teardown.
type MediaSource interface {
	OnTimeUpdate(fn func(t float64)) (cancel func())
	OnMetadata(fn func(width, height int)) (cancel func())
	//Resolution returns the native resolution, 0x0 while metadata is not loaded
	Resolution() (width, height int)
}

type timeListener struct {
	id int
	fn func(float64)
}

type metadataListener struct {
	id int
	fn func(int, int)
}

//Clock is an in-process MediaSource. Notifications are delivered synchronously on the
//caller's goroutine, in subscription order. It is not safe for concurrent use.
type Clock struct {
	duration float64
	current  float64
	width    int
	height   int

	nextID        int
	timeListeners []timeListener
	metaListeners []metadataListener
}

//NewClock returns a clock at time 0 for a media of given duration (seconds)
func NewClock(duration float64) *Clock {
	return &Clock{duration: duration}
}

//Duration returns the media duration in seconds
func (c *Clock) Duration() float64 {
	return c.duration
}

//CurrentTime returns the playback position in seconds
func (c *Clock) CurrentTime() float64 {
	return c.current
}

//Resolution returns the native resolution set by SetResolution
func (c *Clock) Resolution() (int, int) {
	return c.width, c.height
}

//SetResolution records the native resolution and notifies metadata listeners
func (c *Clock) SetResolution(width, height int) {
	c.width, c.height = width, height
	listeners := append([]metadataListener(nil), c.metaListeners...)
	for _, l := range listeners {
		l.fn(width, height)
	}
}

//SetTime moves the playback position and notifies time listeners.
//Times past the duration are kept as is, negative times become 0.
func (c *Clock) SetTime(t float64) {
	if !(t > 0) {
		t = 0
	}
	c.current = t
	listeners := append([]timeListener(nil), c.timeListeners...)
	for _, l := range listeners {
		l.fn(t)
	}
}

//Seek jumps to given time. For listeners a seek is just another time change.
func (c *Clock) Seek(t float64) {
	c.SetTime(t)
}

//Advance moves the playback position forward by dt seconds
func (c *Clock) Advance(dt float64) {
	c.SetTime(c.current + dt)
}

//Listeners returns how many subscriptions are alive
func (c *Clock) Listeners() int {
	return len(c.timeListeners) + len(c.metaListeners)
}

func (c *Clock) OnTimeUpdate(fn func(float64)) func() {
	c.nextID++
	id := c.nextID
	c.timeListeners = append(c.timeListeners, timeListener{id: id, fn: fn})
	return func() {
		for i, l := range c.timeListeners {
			if l.id == id {
				c.timeListeners = append(c.timeListeners[:i:i], c.timeListeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Clock) OnMetadata(fn func(int, int)) func() {
	c.nextID++
	id := c.nextID
	c.metaListeners = append(c.metaListeners, metadataListener{id: id, fn: fn})
	return func() {
		for i, l := range c.metaListeners {
			if l.id == id {
				c.metaListeners = append(c.metaListeners[:i:i], c.metaListeners[i+1:]...)
				return
			}
		}
	}
}
