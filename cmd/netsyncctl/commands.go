package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/midi"
	"github.com/unkn0wn-root/netsync/timecode"
)

const eventUsage = `<kind> [fields]

kinds:
  mtc-quarter-frame <type> <value>
  mtc-full-frame    <HH:MM:SS:FF>
  mmc-stop
  mmc-play
  mmc-locate        <HH:MM:SS:FF>`

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode " + eventUsage,
		Short: "Encode an event as a network payload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseEvent(args)
			if err != nil {
				return err
			}
			p, err := netsync.Marshal(e)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(p))
			return nil
		},
	}
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a network payload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseHex(args)
			if err != nil {
				return err
			}
			e, err := netsync.Unmarshal(b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e)
			return nil
		},
	}
}

func (a *app) fromMidiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-midi <hex>",
		Short: "Convert a raw MIDI sync message to a network payload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseHex(args)
			if err != nil {
				return err
			}
			e, err := midi.Decode(b)
			if err != nil {
				return err
			}
			p, err := netsync.Marshal(e)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(p))
			return nil
		},
	}
}

func (a *app) toMidiCmd() *cobra.Command {
	var device uint8
	c := &cobra.Command{
		Use:   "to-midi <hex>",
		Short: "Convert a network payload to a raw MIDI message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseHex(args)
			if err != nil {
				return err
			}
			e, err := netsync.Unmarshal(b)
			if err != nil {
				return err
			}
			m, err := midi.Append(nil, e, device)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(m))
			return nil
		},
	}
	c.Flags().Uint8Var(&device, "device", midi.Broadcast, "SysEx device id")
	return c
}

func (a *app) publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish " + eventUsage,
		Short: "Send an event as master and publish the resulting session state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseEvent(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := openStore(a.cfg, a.log)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			out := cmd.OutOrStdout()
			m, err := netsync.NewMaster(netsync.MasterOptions{
				Sink: netsync.SinkFunc(func(_ context.Context, p []byte) error {
					_, err := fmt.Fprintln(out, hex.EncodeToString(p))
					return err
				}),
				Store:   store,
				Session: a.cfg.Session,
				Logger:  a.log,
			})
			if err != nil {
				return err
			}
			if err := m.Send(ctx, e); err != nil {
				return err
			}
			seq, err := store.Seq(ctx, a.cfg.Session)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "session=%s seq=%d state=%s\n", a.cfg.Session, seq, m.State())
			return nil
		},
	}
}

func (a *app) resyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resync",
		Short: "Print the latest published state for the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := openStore(a.cfg, a.log)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			f := netsync.NewFollower(netsync.FollowerOptions{Logger: a.log})
			ok, err := f.Resync(ctx, store, a.cfg.Session)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no state published for session %q", a.cfg.Session)
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.State())
			return nil
		},
	}
}

// parseEvent reads "<kind> [fields]" as printed by eventUsage.
func parseEvent(args []string) (netsync.Event, error) {
	k, ok := netsync.ParseKind(strings.ToLower(args[0]))
	if !ok {
		return netsync.Event{}, fmt.Errorf("unknown event kind %q", args[0])
	}
	fields := args[1:]
	switch k {
	case netsync.KindMmcStop, netsync.KindMmcPlay:
		if len(fields) != 0 {
			return netsync.Event{}, fmt.Errorf("%s takes no fields", k)
		}
		if k == netsync.KindMmcStop {
			return netsync.NewMmcStop(), nil
		}
		return netsync.NewMmcPlay(), nil
	case netsync.KindMtcFullFrame, netsync.KindMmcLocate:
		if len(fields) != 1 {
			return netsync.Event{}, fmt.Errorf("%s takes one HH:MM:SS:FF field", k)
		}
		tc, err := timecode.Parse(fields[0])
		if err != nil {
			return netsync.Event{}, err
		}
		if k == netsync.KindMtcFullFrame {
			return netsync.FullFrameAt(tc), nil
		}
		return netsync.LocateAt(tc), nil
	case netsync.KindMtcQuarterFrame:
		if len(fields) != 2 {
			return netsync.Event{}, fmt.Errorf("%s takes <type> <value>", k)
		}
		typ, err := strconv.ParseUint(fields[0], 0, 8)
		if err != nil {
			return netsync.Event{}, fmt.Errorf("quarter frame type: %w", err)
		}
		val, err := strconv.ParseUint(fields[1], 0, 8)
		if err != nil {
			return netsync.Event{}, fmt.Errorf("quarter frame value: %w", err)
		}
		return netsync.NewMtcQuarterFrame(uint8(typ), uint8(val)), nil
	}
	return netsync.Event{}, fmt.Errorf("unknown event kind %q", args[0])
}

// parseHex joins args and accepts "f0 7f ..." as well as "f07f...".
func parseHex(args []string) ([]byte, error) {
	s := strings.Join(args, "")
	s = strings.NewReplacer(" ", "", ":", "", "0x", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}
