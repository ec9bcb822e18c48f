package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/slidecast/internal/tts"
)

func newListVoicesCommand() *cobra.Command {
	var (
		language string
		locale   string
		gender   string
		detail   bool
	)

	cmd := &cobra.Command{
		Use:   "list-voices",
		Short: "List available narration voices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			voices, err := tts.ListVoices(cmd.Context())
			if err != nil {
				return err
			}

			voices = tts.FilterVoices(voices, tts.VoiceFilter{
				Language: flagOrAny(language),
				Locale:   flagOrAny(locale),
				Gender:   flagOrAny(gender),
			})

			for _, v := range voices {
				if detail {
					fmt.Fprintln(cmd.OutOrStdout(), formatVoice(v))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), v.ShortName)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "all", "Filter by language (e.g. en)")
	cmd.Flags().StringVar(&locale, "locale", "all", "Filter by locale (e.g. en-US)")
	cmd.Flags().StringVar(&gender, "gender", "all", "Filter by gender")
	cmd.Flags().BoolVar(&detail, "detail", false, "Show full voice records")

	return cmd
}

func flagOrAny(value string) string {
	if value == "all" {
		return ""
	}
	return value
}

func formatVoice(v tts.Voice) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ShortName: %s\n", v.ShortName)
	fmt.Fprintf(&sb, "  Name: %s\n", v.Name)
	fmt.Fprintf(&sb, "  Gender: %s\n", v.Gender)
	fmt.Fprintf(&sb, "  Locale: %s\n", v.Locale)
	if v.FriendlyName != "" {
		fmt.Fprintf(&sb, "  FriendlyName: %s\n", v.FriendlyName)
	}
	if v.SuggestedCodec != "" {
		fmt.Fprintf(&sb, "  SuggestedCodec: %s\n", v.SuggestedCodec)
	}
	if v.Status != "" {
		fmt.Fprintf(&sb, "  Status: %s\n", v.Status)
	}
	return sb.String()
}
