package ssh

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/mimecast/webgrep/internal/testutil"

	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

func TestKeyFile(t *testing.T) {
	key, err := GeneratePrivateRSAKey(2048)
	testutil.AssertNoError(t, err)

	dir := testutil.TempDir(t)
	path := filepath.Join(dir, "id_rsa")
	if err := os.WriteFile(path, EncodePrivateKeyToPEM(key), 0600); err != nil {
		t.Fatal(err)
	}

	method, err := KeyFile(path)
	testutil.AssertNoError(t, err)
	if method == nil {
		t.Fatalf("expected an auth method")
	}

	_, err = KeyFile(filepath.Join(dir, "missing"))
	if err == nil {
		t.Fatalf("expected error for missing key file")
	}
}

func TestHostKeyCallback(t *testing.T) {
	key, err := GeneratePrivateRSAKey(2048)
	testutil.AssertNoError(t, err)
	signer, err := gossh.NewSignerFromKey(key)
	testutil.AssertNoError(t, err)

	other, err := GeneratePrivateRSAKey(2048)
	testutil.AssertNoError(t, err)
	otherSigner, err := gossh.NewSignerFromKey(other)
	testutil.AssertNoError(t, err)

	addr := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 2222}
	line := knownhosts.Line([]string{knownhosts.Normalize(addr.String())}, signer.PublicKey())
	knownHosts := testutil.TempFile(t, line+"\n")

	callback, err := HostKeyCallback(knownHosts, false)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, callback("127.0.0.1:2222", addr, signer.PublicKey()))
	if err := callback("127.0.0.1:2222", addr, otherSigner.PublicKey()); err == nil {
		t.Errorf("expected mismatching host key to be rejected")
	}

	trustAll, err := HostKeyCallback("/does/not/exist", true)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, trustAll("127.0.0.1:2222", addr, otherSigner.PublicKey()))

	_, err = HostKeyCallback("/does/not/exist", false)
	testutil.AssertError(t, err, "known hosts")
}

func TestDial(t *testing.T) {
	server := testutil.NewMockSSHServer(t)
	server.AddHandler("session", testutil.CatSessionHandler(map[string]string{
		"/var/www/index.html": "hello\n",
	}))
	addr, err := server.Start()
	testutil.AssertNoError(t, err)

	client, err := Dial(context.Background(), addr, &gossh.ClientConfig{
		User:            "webgrep",
		HostKeyCallback: gossh.FixedHostKey(server.HostKey()),
	})
	testutil.AssertNoError(t, err)
	defer client.Close()

	session, err := client.NewSession()
	testutil.AssertNoError(t, err)
	defer session.Close()

	out, err := session.Output("cat -- '/var/www/index.html'")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "hello\n", string(out))
}
