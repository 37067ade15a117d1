package resolver

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/dorinm/sunetbot/internal/stream"
)

// probeFile checks that a clip exists and is a regular file.
func probeFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// openPCM decodes a file path or URL into s16le 48kHz stereo PCM through
// an ffmpeg child process. Closing the stream kills the process.
func openPCM(input string) (io.ReadCloser, error) {
	cmd := exec.Command("ffmpeg",
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", input,
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", stream.SampleRate),
		"-ac", fmt.Sprintf("%d", stream.Channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	reader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("command start error: %w", err)
	}

	return &procStream{reader: reader, cmd: cmd}, nil
}

type procStream struct {
	reader io.ReadCloser
	cmd    *exec.Cmd
}

func (p *procStream) Read(b []byte) (int, error) {
	return p.reader.Read(b)
}

func (p *procStream) Close() error {
	_ = p.cmd.Process.Kill()
	err := p.reader.Close()
	_ = p.cmd.Wait()
	return err
}
