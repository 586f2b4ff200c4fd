package cubekit

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AnimationManager serializes access to "which face is currently turning"
// so the engine never runs two conflicting visual turns at once. A mutex
// plus a single current-animation slot replaces the cooperative event-loop
// serialization a browser engine gets for free: callers on any goroutine
// see exactly one active animation at a time.

// Animation is an ephemeral visual transition owned by the manager for the
// lifetime of one face turn. It is never persisted.
type Animation struct {
	ID        string
	Face      Face
	Turn      Turn
	StartTime time.Time
	Duration  time.Duration
	Easing    string
}

// Progress returns the animation's completion fraction in [0, 1].
func (a *Animation) Progress() float64 {
	if a.StartTime.IsZero() {
		return 0
	}
	elapsed := time.Since(a.StartTime)
	if elapsed >= a.Duration {
		return 1
	}
	return float64(elapsed) / float64(a.Duration)
}

// Remaining returns the time until the animation completes.
func (a *Animation) Remaining() time.Duration {
	if a.StartTime.IsZero() {
		return a.Duration
	}
	rem := a.Duration - time.Since(a.StartTime)
	if rem < 0 {
		return 0
	}
	return rem
}

// AnimationCallbacks receive lifecycle events. All callbacks fire outside
// the manager's lock and may be nil.
type AnimationCallbacks struct {
	OnStart       func(Animation)
	OnComplete    func(Animation)
	OnError       func(Animation, error)
	OnQueueChange func(pending int)
}

// DefaultEasing is applied when an enqueue does not specify one.
const DefaultEasing = "ease-in-out"

// AnimationManager is a bounded FIFO queue with at most one (by default)
// animation active at a time. Completion is timer-driven: an animation
// auto-completes after its duration unless cancelled first.
type AnimationManager struct {
	mu sync.Mutex

	current   *Animation
	active    map[string]*Animation // running animations by id (maxConcurrent > 1)
	queue     []*Animation
	timers    map[string]*time.Timer
	blocked   bool
	maxQueue  int
	maxActive int

	callbacks AnimationCallbacks
	log       *logrus.Logger
}

// NewAnimationManager creates an animation manager.
func NewAnimationManager(opts ...Option) *AnimationManager {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &AnimationManager{
		active:    make(map[string]*Animation),
		timers:    make(map[string]*time.Timer),
		maxQueue:  cfg.maxQueueSize,
		maxActive: cfg.maxConcurrent,
		log:       cfg.logger,
	}
}

// SetCallbacks installs lifecycle callbacks. Call before enqueuing.
func (am *AnimationManager) SetCallbacks(cb AnimationCallbacks) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.callbacks = cb
}

// Enqueue adds an animation for the given move. It fails with
// ANIMATION_IN_PROGRESS when the queue is full or when the face already
// has an active or queued animation. If nothing is running and the manager
// is not blocked, the head of the queue starts immediately.
func (am *AnimationManager) Enqueue(face Face, turn Turn, duration time.Duration) (string, error) {
	if err := ValidateMove(face, turn, nil); err != nil {
		return "", err
	}
	if duration <= 0 {
		duration = DefaultMoveDuration
	}

	am.mu.Lock()
	if len(am.queue) >= am.maxQueue {
		am.mu.Unlock()
		return "", newAnimationError("queue_full", 0, "animation queue is full (%d pending)", am.maxQueue)
	}
	if am.faceBusyLocked(face) {
		am.mu.Unlock()
		return "", newAnimationError("animation_conflict", 0, "face %s already has an active or queued animation", face)
	}

	anim := &Animation{
		ID:       uuid.New().String(),
		Face:     face,
		Turn:     turn,
		Duration: duration,
		Easing:   DefaultEasing,
	}
	am.queue = append(am.queue, anim)
	pending := len(am.queue)
	started := am.processQueueLocked()
	am.mu.Unlock()

	am.notifyQueueChange(pending)
	for _, s := range started {
		am.notifyStart(s)
	}
	return anim.ID, nil
}

// faceBusyLocked reports whether a face has an active or queued animation.
func (am *AnimationManager) faceBusyLocked(face Face) bool {
	for _, a := range am.active {
		if a.Face == face {
			return true
		}
	}
	for _, a := range am.queue {
		if a.Face == face {
			return true
		}
	}
	return false
}

// processQueueLocked starts queued animations while capacity allows.
// Returns the animations that started so callbacks can fire unlocked.
func (am *AnimationManager) processQueueLocked() []Animation {
	var started []Animation
	for !am.blocked && len(am.queue) > 0 && len(am.active) < am.maxActive {
		anim := am.queue[0]
		am.queue = am.queue[1:]
		anim.StartTime = time.Now()
		am.active[anim.ID] = anim
		if am.current == nil {
			am.current = anim
		}

		id := anim.ID
		am.timers[id] = time.AfterFunc(anim.Duration, func() {
			// Timer-driven auto-completion; a stale timer for an already
			// cancelled animation is a no-op inside Complete.
			_ = am.Complete(id)
		})
		started = append(started, *anim)
	}
	return started
}

// Complete finishes the animation with the given id. It fails with
// INVALID_MOVE when the id matches no active animation. The completion
// callback fires and the queue advances.
func (am *AnimationManager) Complete(id string) error {
	am.mu.Lock()
	anim, ok := am.active[id]
	if !ok {
		am.mu.Unlock()
		return newMoveError("unknown_animation", "no active animation with id %s", id)
	}
	am.clearLocked(id)
	done := *anim
	started := am.processQueueLocked()
	pending := len(am.queue)
	am.mu.Unlock()

	am.notifyComplete(done)
	am.notifyQueueChange(pending)
	for _, s := range started {
		am.notifyStart(s)
	}
	return nil
}

// Cancel removes an animation from the current slot or the pending queue.
// The error callback fires for it and, if it was running, the queue
// advances.
func (am *AnimationManager) Cancel(id string) error {
	am.mu.Lock()

	if anim, ok := am.active[id]; ok {
		am.clearLocked(id)
		cancelled := *anim
		started := am.processQueueLocked()
		pending := len(am.queue)
		am.mu.Unlock()

		am.notifyError(cancelled, newMoveError("cancelled", "animation %s cancelled", id))
		am.notifyQueueChange(pending)
		for _, s := range started {
			am.notifyStart(s)
		}
		return nil
	}

	for i, anim := range am.queue {
		if anim.ID != id {
			continue
		}
		am.queue = append(am.queue[:i], am.queue[i+1:]...)
		cancelled := *anim
		pending := len(am.queue)
		am.mu.Unlock()

		am.notifyError(cancelled, newMoveError("cancelled", "animation %s cancelled", id))
		am.notifyQueueChange(pending)
		return nil
	}

	am.mu.Unlock()
	return newMoveError("unknown_animation", "no animation with id %s", id)
}

// clearLocked removes an animation from the active set and stops its timer.
func (am *AnimationManager) clearLocked(id string) {
	if t, ok := am.timers[id]; ok {
		t.Stop()
		delete(am.timers, id)
	}
	delete(am.active, id)
	if am.current != nil && am.current.ID == id {
		am.current = nil
		for _, a := range am.active {
			am.current = a
			break
		}
	}
}

// Block pauses dequeuing. Enqueues still succeed; nothing starts until
// Unblock.
func (am *AnimationManager) Block() {
	am.mu.Lock()
	am.blocked = true
	am.mu.Unlock()
}

// Unblock resumes dequeuing and starts the head of the queue if capacity
// allows.
func (am *AnimationManager) Unblock() {
	am.mu.Lock()
	am.blocked = false
	started := am.processQueueLocked()
	am.mu.Unlock()

	for _, s := range started {
		am.notifyStart(s)
	}
}

// Current returns a copy of the current animation, if any.
func (am *AnimationManager) Current() (Animation, bool) {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.current == nil {
		return Animation{}, false
	}
	return *am.current, true
}

// Pending returns the number of queued (not yet started) animations.
func (am *AnimationManager) Pending() int {
	am.mu.Lock()
	defer am.mu.Unlock()
	return len(am.queue)
}

// Context snapshots the running animations as an AnimationContext for the
// move validator.
func (am *AnimationManager) Context() AnimationContext {
	am.mu.Lock()
	defer am.mu.Unlock()
	if len(am.active) == 0 {
		return nil
	}
	ctx := make(AnimationContext, len(am.active))
	for _, a := range am.active {
		ctx[a.Face] = AnimationProgress{Progress: a.Progress(), Remaining: a.Remaining()}
	}
	return ctx
}

// Reset cancels everything and empties the queue. No callbacks fire.
func (am *AnimationManager) Reset() {
	am.mu.Lock()
	defer am.mu.Unlock()
	for id, t := range am.timers {
		t.Stop()
		delete(am.timers, id)
	}
	am.active = make(map[string]*Animation)
	am.queue = nil
	am.current = nil
	am.blocked = false
}

func (am *AnimationManager) notifyStart(a Animation) {
	if am.callbacks.OnStart != nil {
		am.callbacks.OnStart(a)
	}
	am.log.WithFields(logrus.Fields{"id": a.ID, "face": a.Face, "turn": a.Turn.String()}).Debug("animation started")
}

func (am *AnimationManager) notifyComplete(a Animation) {
	if am.callbacks.OnComplete != nil {
		am.callbacks.OnComplete(a)
	}
	am.log.WithField("id", a.ID).Debug("animation completed")
}

func (am *AnimationManager) notifyError(a Animation, err error) {
	if am.callbacks.OnError != nil {
		am.callbacks.OnError(a, err)
	}
	am.log.WithFields(logrus.Fields{"id": a.ID, "error": err}).Debug("animation errored")
}

func (am *AnimationManager) notifyQueueChange(pending int) {
	if am.callbacks.OnQueueChange != nil {
		am.callbacks.OnQueueChange(pending)
	}
}
