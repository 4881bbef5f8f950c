package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sapling/internal/trace"
)

type traceFlags struct {
	output   string
	level    trace.Level
	mode     trace.Mode
	ringSize int
	beat     time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var tf traceFlags
	var err error
	if tf.output, err = flags.GetString("trace"); err != nil {
		return tf, err
	}
	if tf.ringSize, err = flags.GetInt("trace-ring-size"); err != nil {
		return tf, err
	}
	if tf.beat, err = flags.GetDuration("trace-heartbeat"); err != nil {
		return tf, err
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return tf, err
	}
	if tf.level, err = trace.ParseLevel(levelStr); err != nil {
		return tf, err
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return tf, err
	}
	if tf.mode, err = trace.ParseMode(modeStr); err != nil {
		return tf, err
	}
	// одного --trace достаточно, чтобы увидеть фазы
	if tf.level == trace.LevelOff && tf.output != "" {
		tf.level = trace.LevelPhase
	}
	return tf, nil
}

// setupTracing installs the tracer on the command context and opens the root
// span named after the command. The cleanup closes everything in reverse.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, fmt.Errorf("trace flags: %w", err)
	}
	if tf.level == trace.LevelOff {
		return func() {}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:    tf.level,
		Mode:     tf.mode,
		Path:     tf.output,
		RingSize: tf.ringSize,
	})
	if err != nil {
		return nil, err
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	ctx, root := trace.Start(ctx, trace.ScopeCommand, cmd.Name())
	stopBeat := trace.StartHeartbeat(ctx, tracer, tf.beat)
	cmd.SetContext(ctx)

	stderr := cmd.ErrOrStderr()
	return func() {
		stopBeat()
		root.End("")
		// в режиме both поток уже всё напечатал
		if ring, ok := tracer.(*trace.Ring); ok {
			if err := ring.Dump(stderr, trace.FormatText); err != nil {
				fmt.Fprintf(stderr, "trace: %v\n", err)
			}
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(stderr, "trace: %v\n", err)
		}
	}, nil
}
