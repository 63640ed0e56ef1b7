package burn

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"platter/internal/config"
	"platter/internal/disc"
	"platter/internal/logging"
	"platter/internal/services"
	"platter/internal/services/ffmpeg"
	"platter/internal/services/normalize"
	"platter/internal/services/wodim"
	"platter/internal/staging"
	"platter/internal/textutil"
)

// waitFunc abstracts the blocking disc wait for test injection.
type waitFunc func(ctx context.Context, device string, timeout time.Duration) (disc.DriveStatus, error)

// staleSessionAge is how old an abandoned staging session must be before a
// new burn reclaims it.
const staleSessionAge = 24 * time.Hour

// Burner runs the transcode, normalize, and write pipeline for one plan at
// a time. A file lock on the staging root keeps concurrent invocations from
// fighting over the drive.
type Burner struct {
	cfg        *config.Config
	logger     *slog.Logger
	transcoder ffmpeg.Transcoder
	leveler    normalize.Leveler
	writer     wodim.Burner
	wait       waitFunc
}

// Option configures the burner.
type Option func(*Burner)

// WithTranscoder injects a transcoder (primarily for tests).
func WithTranscoder(t ffmpeg.Transcoder) Option {
	return func(b *Burner) {
		if t != nil {
			b.transcoder = t
		}
	}
}

// WithLeveler injects a leveler (primarily for tests).
func WithLeveler(l normalize.Leveler) Option {
	return func(b *Burner) {
		if l != nil {
			b.leveler = l
		}
	}
}

// WithWriter injects a disc writer (primarily for tests).
func WithWriter(w wodim.Burner) Option {
	return func(b *Burner) {
		if w != nil {
			b.writer = w
		}
	}
}

// WithWaitFunc injects the disc wait (primarily for tests).
func WithWaitFunc(fn waitFunc) Option {
	return func(b *Burner) {
		if fn != nil {
			b.wait = fn
		}
	}
}

// NewBurner constructs a burner with real tool clients.
func NewBurner(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Burner, error) {
	transcoder, err := ffmpeg.New(cfg.FFmpegBinary(), cfg.Burner.TranscodeTimeout)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg client: %w", err)
	}
	leveler, err := normalize.New(cfg.NormalizeBinary(), cfg.Burner.TranscodeTimeout)
	if err != nil {
		return nil, fmt.Errorf("normalize client: %w", err)
	}
	writer, err := wodim.New(cfg.WodimBinary(), cfg.Burner.BurnTimeout)
	if err != nil {
		return nil, fmt.Errorf("wodim client: %w", err)
	}

	burner := &Burner{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "burner"),
		transcoder: transcoder,
		leveler:    leveler,
		writer:     writer,
		wait:       disc.WaitForDisc,
	}
	for _, opt := range opts {
		opt(burner)
	}
	return burner, nil
}

// Run executes the full pipeline for the plan. The staging session is
// removed on every path out; the lock is held for the duration.
func (b *Burner) Run(ctx context.Context, plan *Plan, onEvent EventFunc) error {
	if err := b.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "prepare", "", "create directories", err)
	}

	lock := flock.New(filepath.Join(b.cfg.Paths.StagingDir, "burn.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrTransient, "prepare", "lock", "acquire burn lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrTransient, "prepare", "lock", "another burn is already running", nil)
	}
	defer func() { _ = lock.Unlock() }()

	// Holding the lock, so any burn- directory left behind belongs to a
	// crashed run and is safe to reclaim.
	if stale := staging.CleanStale(ctx, b.cfg.Paths.StagingDir, staleSessionAge, b.logger); len(stale.Removed) > 0 {
		onEvent.emit(Event{Stage: StagePrepare, TrackIndex: -1,
			Message: fmt.Sprintf("reclaimed %d stale staging session(s)", len(stale.Removed))})
	}

	session, err := staging.NewSession(b.cfg.Paths.StagingDir)
	if err != nil {
		return services.Wrap(services.ErrTransient, "prepare", "staging", "create session", err)
	}
	defer func() {
		if err := session.Remove(); err != nil {
			b.logger.Warn("failed to remove burn session",
				logging.String("path", session.Root),
				logging.Error(err))
		}
	}()

	ctx = services.WithSessionID(ctx, session.ID)
	logger := b.logger.With(logging.String("session", session.ID))
	logger.Info("burn started",
		logging.String(logging.FieldPlaylist, plan.PlaylistName),
		logging.Int("tracks", len(plan.Tracks)),
		logging.String("length", textutil.FormatDuration(plan.DurationSec)))

	onEvent.emit(Event{Stage: StagePrepare, TrackIndex: -1,
		Message: fmt.Sprintf("staging %d tracks in %s", len(plan.Tracks), session.Root)})

	files, err := b.transcodeTracks(ctx, session, plan, onEvent, logger)
	if err != nil {
		return err
	}

	if err := b.normalizeTracks(ctx, files, onEvent, logger); err != nil {
		return err
	}

	if b.cfg.Burner.WaitForDisc {
		if err := b.waitForDisc(ctx, onEvent, logger); err != nil {
			return err
		}
	}

	if err := b.writeDisc(ctx, plan, files, onEvent, logger); err != nil {
		return err
	}

	logger.Info("burn complete", logging.String(logging.FieldPlaylist, plan.PlaylistName))
	onEvent.emit(Event{Stage: StageDone, TrackIndex: -1, Percent: 100,
		Message: fmt.Sprintf("wrote %d tracks (%s)", len(plan.Tracks), textutil.FormatDuration(plan.DurationSec))})
	return nil
}

// transcodeTracks converts every plan entry into a staged WAV, reusing the
// first conversion when the same source appears at multiple positions.
func (b *Burner) transcodeTracks(ctx context.Context, session *staging.Session, plan *Plan, onEvent EventFunc, logger *slog.Logger) ([]string, error) {
	ctx = services.WithStage(ctx, string(StageTranscode))
	staged := make(map[string]string, len(plan.Tracks))
	files := make([]string, 0, len(plan.Tracks))

	for i, track := range plan.Tracks {
		if existing, ok := staged[track.Path]; ok {
			files = append(files, existing)
			continue
		}

		name := textutil.SanitizeTrackName(track.Title)
		dst := session.TrackPath(i, name)
		onEvent.emit(Event{Stage: StageTranscode, TrackIndex: i, TrackTitle: track.Title,
			Message: fmt.Sprintf("transcoding %s", track.Title)})
		logger.Info("transcoding track",
			logging.Int64(logging.FieldTrackID, track.ID),
			logging.String("source", track.Path),
			logging.String("target", dst))

		trackCtx := services.WithTrackID(ctx, track.ID)
		duration := time.Duration(track.DurationSec) * time.Second
		err := b.transcoder.Transcode(trackCtx, track.Path, dst, duration, func(update ffmpeg.ProgressUpdate) {
			onEvent.emit(Event{Stage: StageTranscode, TrackIndex: i, TrackTitle: track.Title, Percent: update.Percent})
		})
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, string(StageTranscode), "ffmpeg", track.Title, err)
		}

		staged[track.Path] = dst
		files = append(files, dst)
	}
	return files, nil
}

func (b *Burner) normalizeTracks(ctx context.Context, files []string, onEvent EventFunc, logger *slog.Logger) error {
	ctx = services.WithStage(ctx, string(StageNormalize))
	onEvent.emit(Event{Stage: StageNormalize, TrackIndex: -1, Message: "leveling volume across tracks"})

	unique := uniqueFiles(files)
	err := b.leveler.Level(ctx, unique, func(line string) {
		logger.Debug("normalize output", logging.String("line", line))
	})
	if err != nil {
		return services.Wrap(services.ErrExternalTool, string(StageNormalize), "normalize", "", err)
	}
	return nil
}

func (b *Burner) waitForDisc(ctx context.Context, onEvent EventFunc, logger *slog.Logger) error {
	device := b.cfg.Burner.Device
	timeout := time.Duration(b.cfg.Burner.DiscTimeoutSeconds) * time.Second
	onEvent.emit(Event{Stage: StageWaitDisc, TrackIndex: -1,
		Message: fmt.Sprintf("waiting for a blank disc in %s", device)})
	logger.Info("waiting for disc", logging.String("device", device))

	status, err := b.wait(ctx, device, timeout)
	if err != nil {
		return services.Wrap(services.ErrTimeout, string(StageWaitDisc), "",
			fmt.Sprintf("drive %s reported %s", device, status), err)
	}
	return nil
}

func (b *Burner) writeDisc(ctx context.Context, plan *Plan, files []string, onEvent EventFunc, logger *slog.Logger) error {
	ctx = services.WithStage(ctx, string(StageBurn))
	onEvent.emit(Event{Stage: StageBurn, TrackIndex: -1,
		Message: fmt.Sprintf("writing %d tracks to %s", len(files), b.cfg.Burner.Device)})

	req := wodim.Request{
		Device: b.cfg.Burner.Device,
		Speed:  b.cfg.Burner.Speed,
		Eject:  b.cfg.Burner.Eject,
		Files:  files,
	}
	err := b.writer.Burn(ctx, req, func(p wodim.TrackProgress) {
		index := p.Track - 1
		event := Event{Stage: StageBurn, TrackIndex: index, Percent: p.Percent()}
		if index >= 0 && index < len(plan.Tracks) {
			event.TrackTitle = plan.Tracks[index].Title
		}
		onEvent.emit(event)
	}, func(line string) {
		logger.Debug("wodim output", logging.String("line", line))
	})
	if err != nil {
		return services.Wrap(services.ErrExternalTool, string(StageBurn), "wodim", "", err)
	}
	return nil
}

func uniqueFiles(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, file := range files {
		if _, ok := seen[file]; ok {
			continue
		}
		seen[file] = struct{}{}
		out = append(out, file)
	}
	return out
}

